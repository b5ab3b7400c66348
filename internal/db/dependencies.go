package db

import (
	"context"
	"time"
)

// Client defines the ticket store interface
type Client interface {
	Close() error

	InsertTicket(ctx context.Context, t TicketType, userID, accusedID, body string) (int64, error)
	SetTicketChannel(ctx context.Context, t TicketType, id int64, channelID string) error
	GetTicket(ctx context.Context, t TicketType, id int64) (*Ticket, error)
	DeleteTicket(ctx context.Context, t TicketType, id int64) error
	GetPendingTickets(ctx context.Context, t TicketType, olderThan time.Time) ([]*Ticket, error)
}
