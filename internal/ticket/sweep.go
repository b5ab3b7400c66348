package ticket

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/hearthbot/hearth/internal/db"
	"github.com/hearthbot/hearth/internal/observability"
)

// Sweeper periodically deletes tickets stuck without a channel past the
// pending timeout. A ticket only stays channel-less if the process died
// between the row insert and the channel attach, so anything the sweep finds
// is an orphan.
type Sweeper struct {
	store    db.Client
	interval time.Duration
	maxAge   time.Duration
	entry    *log.Entry
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewSweeper(store db.Client, interval, maxAge time.Duration) *Sweeper {
	return &Sweeper{
		store:    store,
		interval: interval,
		maxAge:   maxAge,
		entry:    log.WithField("context", "ticket_sweeper"),
	}
}

func (s *Sweeper) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				swept, err := s.Sweep(runCtx)
				if err != nil {
					s.entry.WithError(err).Error("cant sweep pending tickets")
					continue
				}
				if swept > 0 {
					s.entry.WithField("count", swept).Info("swept orphaned pending tickets")
				}
			}
		}
	}()
	return nil
}

func (s *Sweeper) Stop(ctx context.Context) error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sweep runs one reconciliation pass over both partitions and returns the
// number of rows removed.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-s.maxAge)
	swept := 0
	for _, t := range []db.TicketType{db.TicketReport, db.TicketSuggestion} {
		pending, err := s.store.GetPendingTickets(ctx, t, cutoff)
		if err != nil {
			return swept, err
		}
		for _, ticket := range pending {
			if err := s.store.DeleteTicket(ctx, t, ticket.ID); err != nil {
				return swept, err
			}
			observability.RecordTicketSwept(t.String())
			swept++
		}
	}
	return swept, nil
}
