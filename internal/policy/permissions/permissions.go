package permissions

import (
	"slices"

	"github.com/bwmarrin/discordgo"
)

func IsOperator(member *discordgo.Member) bool {
	if member == nil {
		return false
	}
	if member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return member.Permissions&discordgo.PermissionManageChannels != 0
}

// CanCloseTickets allows guild operators, plus anyone holding the configured
// admin role.
func CanCloseTickets(member *discordgo.Member, adminRoleID string) bool {
	if member == nil {
		return false
	}
	if IsOperator(member) {
		return true
	}
	if adminRoleID == "" {
		return false
	}
	return slices.Contains(member.Roles, adminRoleID)
}
