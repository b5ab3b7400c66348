package db

import (
	"database/sql"
	"testing"
)

func TestTicketTypeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, ticketType := range []TicketType{TicketReport, TicketSuggestion} {
		parsed, err := ParseTicketType(ticketType.String())
		if err != nil {
			t.Fatalf("parse %q: %v", ticketType, err)
		}
		if parsed != ticketType {
			t.Fatalf("round trip mismatch: got %v want %v", parsed, ticketType)
		}
	}

	if _, err := ParseTicketType("grievance"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestTicketPending(t *testing.T) {
	t.Parallel()

	ticket := &Ticket{}
	if !ticket.Pending() {
		t.Fatalf("ticket without channel should be pending")
	}
	ticket.ChannelID = sql.NullString{String: "9000", Valid: true}
	if ticket.Pending() {
		t.Fatalf("ticket with channel should not be pending")
	}
}
