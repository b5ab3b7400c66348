package ticket

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/hearthbot/hearth/internal/db"
)

const (
	reportColour     = 0xe74c3c
	suggestionColour = 0x3498db
)

// BuildSummary renders the operator-facing embed for a ticket. It is a pure
// mapping of the ticket fields, field order matters for operators scanning
// the ticket channels.
func BuildSummary(t db.TicketType, id int64, reporter, body, accused string) *discordgo.MessageEmbed {
	switch t {
	case db.TicketReport:
		return &discordgo.MessageEmbed{
			Title:  fmt.Sprintf("Report Ticket #%d", id),
			Color:  reportColour,
			Fields: summaryFields("Accuser", reporter, "Accusing", accused, "Reason Given", body),
		}
	default:
		return &discordgo.MessageEmbed{
			Title:  fmt.Sprintf("Suggestion Ticket #%d", id),
			Color:  suggestionColour,
			Fields: summaryFields("Suggestion From", reporter, "Suggestion/Feature Request", body),
		}
	}
}

func summaryFields(pairs ...string) []*discordgo.MessageEmbedField {
	fields := make([]*discordgo.MessageEmbedField, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   pairs[i],
			Value:  pairs[i+1],
			Inline: false,
		})
	}
	return fields
}

// ChannelName derives the deterministic discussion channel name for a ticket.
func ChannelName(t db.TicketType, id int64) string {
	return fmt.Sprintf("%s-ticket-%d", t, id)
}
