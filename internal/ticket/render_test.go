package ticket_test

import (
	"reflect"
	"testing"

	"github.com/hearthbot/hearth/internal/db"
	"github.com/hearthbot/hearth/internal/ticket"
)

func TestBuildSummaryReportOrder(t *testing.T) {
	t.Parallel()

	embed := ticket.BuildSummary(db.TicketReport, 7, "<@1>", "being rude", "<@2>")
	if embed.Title != "Report Ticket #7" {
		t.Fatalf("unexpected title: %q", embed.Title)
	}
	wantNames := []string{"Accuser", "Accusing", "Reason Given"}
	if len(embed.Fields) != len(wantNames) {
		t.Fatalf("unexpected field count: %d", len(embed.Fields))
	}
	for i, name := range wantNames {
		if embed.Fields[i].Name != name {
			t.Fatalf("field %d: got %q want %q", i, embed.Fields[i].Name, name)
		}
	}
}

func TestBuildSummarySuggestionOrder(t *testing.T) {
	t.Parallel()

	embed := ticket.BuildSummary(db.TicketSuggestion, 1, "42", "add dark mode", "")
	if embed.Title != "Suggestion Ticket #1" {
		t.Fatalf("unexpected title: %q", embed.Title)
	}
	if len(embed.Fields) != 2 {
		t.Fatalf("unexpected field count: %d", len(embed.Fields))
	}
	if embed.Fields[0].Name != "Suggestion From" || embed.Fields[0].Value != "42" {
		t.Fatalf("unexpected first field: %+v", embed.Fields[0])
	}
	if embed.Fields[1].Name != "Suggestion/Feature Request" || embed.Fields[1].Value != "add dark mode" {
		t.Fatalf("unexpected second field: %+v", embed.Fields[1])
	}
}

func TestBuildSummaryIsDeterministic(t *testing.T) {
	t.Parallel()

	first := ticket.BuildSummary(db.TicketReport, 3, "<@1>", "reason", "<@2>")
	second := ticket.BuildSummary(db.TicketReport, 3, "<@1>", "reason", "<@2>")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different summaries:\n%+v\n%+v", first, second)
	}
}

func TestChannelName(t *testing.T) {
	t.Parallel()

	if got := ticket.ChannelName(db.TicketSuggestion, 1); got != "suggestion-ticket-1" {
		t.Fatalf("unexpected channel name: %q", got)
	}
	if got := ticket.ChannelName(db.TicketReport, 12); got != "report-ticket-12" {
		t.Fatalf("unexpected channel name: %q", got)
	}
}
