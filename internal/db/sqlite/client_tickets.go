package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hearthbot/hearth/internal/db"
)

// partition maps a ticket type to its physical table once, at the store
// boundary. The two tables share a shape modulo the accused column and the
// body column name.
type partition struct {
	table      string
	bodyColumn string
	hasAccused bool
}

var partitions = map[db.TicketType]partition{
	db.TicketReport:     {table: "user_report_tickets", bodyColumn: "reason_msg", hasAccused: true},
	db.TicketSuggestion: {table: "user_suggestion_tickets", bodyColumn: "suggestion_msg", hasAccused: false},
}

func (p partition) selectColumns() string {
	accused := "NULL AS accused_user_id"
	if p.hasAccused {
		accused = "accused_user_id"
	}
	return fmt.Sprintf("ticket_id, user_id, %s, channel_id, %s AS body, created_at", accused, p.bodyColumn)
}

// InsertTicket writes a new channel-less row and returns the generated id.
// The id comes back from the insert statement itself, so concurrent inserts
// from other sessions cannot interleave with a follow-up id lookup.
func (c *sqliteClient) InsertTicket(ctx context.Context, t db.TicketType, userID, accusedID, body string) (int64, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	p := partitions[t]
	var (
		query string
		args  []any
	)
	if p.hasAccused {
		query = fmt.Sprintf(
			"INSERT INTO %s (user_id, accused_user_id, channel_id, %s, created_at) VALUES (?, ?, NULL, ?, ?) RETURNING ticket_id",
			p.table, p.bodyColumn,
		)
		args = []any{userID, accusedID, body, time.Now().UTC()}
	} else {
		query = fmt.Sprintf(
			"INSERT INTO %s (user_id, channel_id, %s, created_at) VALUES (?, NULL, ?, ?) RETURNING ticket_id",
			p.table, p.bodyColumn,
		)
		args = []any{userID, body, time.Now().UTC()}
	}

	var id int64
	if err := c.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to insert %s ticket: %w", t, err)
	}
	return id, nil
}

func (c *sqliteClient) SetTicketChannel(ctx context.Context, t db.TicketType, id int64, channelID string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	p := partitions[t]
	query := fmt.Sprintf("UPDATE %s SET channel_id = ? WHERE ticket_id = ?", p.table)
	if _, err := c.db.ExecContext(ctx, query, channelID, id); err != nil {
		return fmt.Errorf("failed to set channel for %s ticket %d: %w", t, id, err)
	}
	return nil
}

func (c *sqliteClient) GetTicket(ctx context.Context, t db.TicketType, id int64) (*db.Ticket, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	p := partitions[t]
	var ticket db.Ticket
	query := fmt.Sprintf("SELECT %s FROM %s WHERE ticket_id = ?", p.selectColumns(), p.table)
	if err := c.db.GetContext(ctx, &ticket, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s ticket %d: %w", t, id, err)
	}
	return &ticket, nil
}

// DeleteTicket removes the row. Deleting a missing id is a no-op.
func (c *sqliteClient) DeleteTicket(ctx context.Context, t db.TicketType, id int64) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	p := partitions[t]
	query := fmt.Sprintf("DELETE FROM %s WHERE ticket_id = ?", p.table)
	if _, err := c.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete %s ticket %d: %w", t, id, err)
	}
	return nil
}

// GetPendingTickets returns rows still waiting for a channel past the cutoff.
func (c *sqliteClient) GetPendingTickets(ctx context.Context, t db.TicketType, olderThan time.Time) ([]*db.Ticket, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	p := partitions[t]
	var tickets []*db.Ticket
	query := fmt.Sprintf("SELECT %s FROM %s WHERE channel_id IS NULL AND created_at <= ?", p.selectColumns(), p.table)
	if err := c.db.SelectContext(ctx, &tickets, query, olderThan); err != nil {
		return nil, fmt.Errorf("failed to list pending %s tickets: %w", t, err)
	}
	return tickets, nil
}
