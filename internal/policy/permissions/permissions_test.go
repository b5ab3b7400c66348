package permissions

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestCanCloseTickets(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		member      *discordgo.Member
		adminRoleID string
		want        bool
	}{
		{name: "nil member", member: nil, want: false},
		{
			name:   "plain member",
			member: &discordgo.Member{Permissions: 0},
			want:   false,
		},
		{
			name:   "manage channels",
			member: &discordgo.Member{Permissions: discordgo.PermissionManageChannels},
			want:   true,
		},
		{
			name:   "administrator",
			member: &discordgo.Member{Permissions: discordgo.PermissionAdministrator},
			want:   true,
		},
		{
			name:        "admin role",
			member:      &discordgo.Member{Roles: []string{"111", "222"}},
			adminRoleID: "222",
			want:        true,
		},
		{
			name:        "other role only",
			member:      &discordgo.Member{Roles: []string{"111"}},
			adminRoleID: "222",
			want:        false,
		},
		{
			name:   "no admin role configured",
			member: &discordgo.Member{Roles: []string{"111"}},
			want:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanCloseTickets(tc.member, tc.adminRoleID); got != tc.want {
				t.Fatalf("CanCloseTickets: got %v want %v", got, tc.want)
			}
		})
	}
}
