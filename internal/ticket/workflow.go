package ticket

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hearthbot/hearth/internal/db"
	"github.com/hearthbot/hearth/internal/observability"
)

// ErrSelfReport rejects report tickets whose accused is the reporter. Checked
// before any store write happens.
var ErrSelfReport = errors.New("self-report")

// Provisioner creates and destroys the external discussion channels tied to a
// ticket's lifecycle. The Discord implementation lives in
// internal/infrastructure/discord.
type Provisioner interface {
	CreateChannel(ctx context.Context, name string) (string, error)
	DeleteChannel(ctx context.Context, channelID string) error
	PostSummary(ctx context.Context, channelID string, embed *discordgo.MessageEmbed) error
}

// Member identifies a guild member involved in a ticket. Mention is the
// display form used in summaries; the store only ever sees the ID.
type Member struct {
	ID      string
	Mention string
}

func (m Member) label() string {
	if m.Mention != "" {
		return m.Mention
	}
	return m.ID
}

type CreateRequest struct {
	Type     db.TicketType
	Reporter Member
	Accused  Member
	Body     string
}

type Created struct {
	ID          int64
	ChannelID   string
	ChannelName string
}

type Workflow struct {
	store db.Client
	prov  Provisioner
	entry *log.Entry
}

func NewWorkflow(store db.Client, prov Provisioner) *Workflow {
	return &Workflow{
		store: store,
		prov:  prov,
		entry: log.WithField("context", "ticket_workflow"),
	}
}

// Create opens a new ticket: insert the row, provision the discussion
// channel, attach the channel to the row, post the summary embed. If channel
// provisioning fails the row is deleted again, so no channel-less ticket is
// left behind for the create path.
func (w *Workflow) Create(ctx context.Context, req CreateRequest) (*Created, error) {
	if req.Type == db.TicketReport && req.Accused.ID == req.Reporter.ID {
		return nil, ErrSelfReport
	}

	id, err := w.store.InsertTicket(ctx, req.Type, req.Reporter.ID, req.Accused.ID, req.Body)
	if err != nil {
		observability.RecordTicketFailure("insert")
		return nil, errors.WithMessage(err, "cant insert ticket")
	}
	entry := w.entry.WithFields(log.Fields{"type": req.Type.String(), "ticket_id": id})
	entry.Debug("ticket created in database")

	name := ChannelName(req.Type, id)
	channelID, err := w.prov.CreateChannel(ctx, name)
	if err != nil {
		observability.RecordTicketFailure("provision")
		if deleteErr := w.store.DeleteTicket(ctx, req.Type, id); deleteErr != nil {
			entry.WithError(deleteErr).Error("cant delete ticket after failed channel provisioning")
		}
		return nil, errors.WithMessage(err, "cant provision ticket channel")
	}

	if err := w.store.SetTicketChannel(ctx, req.Type, id, channelID); err != nil {
		observability.RecordTicketFailure("attach")
		return nil, errors.WithMessage(err, "cant attach channel to ticket")
	}

	summary := BuildSummary(req.Type, id, req.Reporter.label(), req.Body, req.Accused.label())
	if err := w.prov.PostSummary(ctx, channelID, summary); err != nil {
		observability.RecordTicketFailure("summary")
		return nil, errors.WithMessage(err, "cant post ticket summary")
	}

	observability.RecordTicketCreated(req.Type.String())
	entry.WithField("channel_id", channelID).Info("ticket opened")
	return &Created{ID: id, ChannelID: channelID, ChannelName: name}, nil
}

// Close tears down a ticket's channel and removes the row. Teardown runs
// first: if it fails the row stays, and the ticket remains recoverable.
func (w *Workflow) Close(ctx context.Context, t db.TicketType, id int64) error {
	ticket, err := w.store.GetTicket(ctx, t, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return db.ErrNotFound
		}
		observability.RecordTicketFailure("lookup")
		return errors.WithMessage(err, "cant look up ticket")
	}

	if ticket.ChannelID.Valid {
		if err := w.prov.DeleteChannel(ctx, ticket.ChannelID.String); err != nil {
			observability.RecordTicketFailure("teardown")
			return errors.WithMessage(err, "cant delete ticket channel")
		}
	}

	if err := w.store.DeleteTicket(ctx, t, id); err != nil {
		observability.RecordTicketFailure("delete")
		return errors.WithMessage(err, "cant delete ticket")
	}

	observability.RecordTicketClosed(t.String())
	w.entry.WithFields(log.Fields{"type": t.String(), "ticket_id": id}).Info("ticket closed")
	return nil
}
