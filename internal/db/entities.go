package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("not found")

// TicketType selects the physical table partition a ticket lives in.
type TicketType int

const (
	TicketReport TicketType = iota
	TicketSuggestion
)

func (t TicketType) String() string {
	switch t {
	case TicketReport:
		return "report"
	case TicketSuggestion:
		return "suggestion"
	}
	return "unknown"
}

// ParseTicketType maps the wire form ("report", "suggestion") back to a TicketType.
func ParseTicketType(s string) (TicketType, error) {
	switch s {
	case "report":
		return TicketReport, nil
	case "suggestion":
		return TicketSuggestion, nil
	}
	return 0, fmt.Errorf("unknown ticket type %q", s)
}

type Ticket struct {
	ID        int64          `db:"ticket_id"`
	UserID    string         `db:"user_id"`
	AccusedID sql.NullString `db:"accused_user_id"`
	Body      string         `db:"body"`
	ChannelID sql.NullString `db:"channel_id"`
	CreatedAt time.Time      `db:"created_at"`
}

// Pending reports whether the ticket has no discussion channel attached yet.
func (t *Ticket) Pending() bool {
	return !t.ChannelID.Valid
}
