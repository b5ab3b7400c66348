package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hearthbot/hearth/internal/db"
)

func newTestClient(t *testing.T) *sqliteClient {
	t.Helper()

	client, err := NewSQLiteClient(context.Background(), t.TempDir(), "test.db")
	if err != nil {
		t.Fatalf("new sqlite client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestInsertTicketReturnsSequentialIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newTestClient(t)

	for want := int64(1); want <= 3; want++ {
		id, err := client.InsertTicket(ctx, db.TicketSuggestion, "42", "", "add dark mode")
		if err != nil {
			t.Fatalf("insert ticket: %v", err)
		}
		if id != want {
			t.Fatalf("unexpected ticket id: got %d want %d", id, want)
		}
	}
}

func TestPartitionsAssignIDsIndependently(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newTestClient(t)

	reportID, err := client.InsertTicket(ctx, db.TicketReport, "1", "2", "spamming")
	if err != nil {
		t.Fatalf("insert report ticket: %v", err)
	}
	suggestionID, err := client.InsertTicket(ctx, db.TicketSuggestion, "1", "", "more emotes")
	if err != nil {
		t.Fatalf("insert suggestion ticket: %v", err)
	}
	if reportID != 1 || suggestionID != 1 {
		t.Fatalf("expected both partitions to start at 1, got report=%d suggestion=%d", reportID, suggestionID)
	}
}

func TestGetTicketRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newTestClient(t)

	id, err := client.InsertTicket(ctx, db.TicketReport, "100", "200", "harassment")
	if err != nil {
		t.Fatalf("insert ticket: %v", err)
	}

	ticket, err := client.GetTicket(ctx, db.TicketReport, id)
	if err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	if ticket.UserID != "100" {
		t.Fatalf("unexpected user id: %q", ticket.UserID)
	}
	if !ticket.AccusedID.Valid || ticket.AccusedID.String != "200" {
		t.Fatalf("unexpected accused id: %+v", ticket.AccusedID)
	}
	if ticket.Body != "harassment" {
		t.Fatalf("unexpected body: %q", ticket.Body)
	}
	if !ticket.Pending() {
		t.Fatalf("fresh ticket should be pending, got channel %+v", ticket.ChannelID)
	}
	if ticket.CreatedAt.IsZero() {
		t.Fatalf("created_at not set")
	}
}

func TestSetTicketChannel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newTestClient(t)

	id, err := client.InsertTicket(ctx, db.TicketSuggestion, "42", "", "add dark mode")
	if err != nil {
		t.Fatalf("insert ticket: %v", err)
	}
	if err := client.SetTicketChannel(ctx, db.TicketSuggestion, id, "9000"); err != nil {
		t.Fatalf("set ticket channel: %v", err)
	}

	ticket, err := client.GetTicket(ctx, db.TicketSuggestion, id)
	if err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	if !ticket.ChannelID.Valid || ticket.ChannelID.String != "9000" {
		t.Fatalf("unexpected channel id: %+v", ticket.ChannelID)
	}
	if ticket.Pending() {
		t.Fatalf("ticket with channel should not be pending")
	}
}

func TestSetTicketChannelMissingIDIsNoop(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)
	if err := client.SetTicketChannel(context.Background(), db.TicketReport, 999, "9000"); err != nil {
		t.Fatalf("set channel on missing id: %v", err)
	}
}

func TestDeleteTicketIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newTestClient(t)

	id, err := client.InsertTicket(ctx, db.TicketReport, "1", "2", "x")
	if err != nil {
		t.Fatalf("insert ticket: %v", err)
	}
	if err := client.DeleteTicket(ctx, db.TicketReport, id); err != nil {
		t.Fatalf("delete ticket: %v", err)
	}
	if _, err := client.GetTicket(ctx, db.TicketReport, id); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := client.DeleteTicket(ctx, db.TicketReport, id); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
}

func TestTicketIDsAreNeverReused(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newTestClient(t)

	first, err := client.InsertTicket(ctx, db.TicketSuggestion, "42", "", "one")
	if err != nil {
		t.Fatalf("insert ticket: %v", err)
	}
	if err := client.DeleteTicket(ctx, db.TicketSuggestion, first); err != nil {
		t.Fatalf("delete ticket: %v", err)
	}
	second, err := client.InsertTicket(ctx, db.TicketSuggestion, "42", "", "two")
	if err != nil {
		t.Fatalf("insert ticket: %v", err)
	}
	if second <= first {
		t.Fatalf("id %d reused after deleting %d", second, first)
	}
}

func TestGetPendingTickets(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newTestClient(t)

	pendingID, err := client.InsertTicket(ctx, db.TicketReport, "1", "2", "stuck")
	if err != nil {
		t.Fatalf("insert ticket: %v", err)
	}
	openID, err := client.InsertTicket(ctx, db.TicketReport, "3", "4", "fine")
	if err != nil {
		t.Fatalf("insert ticket: %v", err)
	}
	if err := client.SetTicketChannel(ctx, db.TicketReport, openID, "9000"); err != nil {
		t.Fatalf("set ticket channel: %v", err)
	}

	pending, err := client.GetPendingTickets(ctx, db.TicketReport, time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("get pending tickets: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending ticket, got %d", len(pending))
	}
	if pending[0].ID != pendingID {
		t.Fatalf("unexpected pending ticket id: got %d want %d", pending[0].ID, pendingID)
	}
}
