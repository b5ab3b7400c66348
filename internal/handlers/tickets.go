package handlers

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hearthbot/hearth/internal/bot"
	"github.com/hearthbot/hearth/internal/db"
	"github.com/hearthbot/hearth/internal/infrastructure/discord"
	"github.com/hearthbot/hearth/internal/policy/permissions"
	"github.com/hearthbot/hearth/internal/ticket"
)

const (
	reportModalID     = "ticket-report-modal"
	suggestionModalID = "ticket-suggestion-modal"

	reportAccusedInputID  = "accused_user"
	reportReasonInputID   = "reason"
	suggestionTextInputID = "suggestion"

	thanksReportMsg     = "Thanks for your report!\nWe will look into it as soon as possible."
	thanksSuggestionMsg = "Thanks for your suggestion!\nWe will look into it as soon as possible."
	selfReportMsg       = "You cannot report yourself\n  ╰(ಠ ͟ʖ ಠ)╯"
	badMemberMsg        = "Unable to process your report.\nPlease make sure you are entering a valid username."
	genericFailureMsg   = "Something went wrong. Please try again later."
	notAllowedMsg       = "You do not have permission to close tickets."
	ticketClosedMsg     = "Ticket closed. The ticket channel has also been deleted."
)

type Tickets struct {
	s        bot.Service
	workflow *ticket.Workflow
	entry    *log.Entry
}

func NewTickets(s bot.Service, workflow *ticket.Workflow) *Tickets {
	return &Tickets{
		s:        s,
		workflow: workflow,
		entry:    log.WithField("handler", "tickets"),
	}
}

func (h *Tickets) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ticket",
			Description: "Open tickets here...",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "report",
					Description: "Report a user for misbehaviour or bullying",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "suggestion",
					Description: "Suggest a feature for the server",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "close",
					Description: "Close a ticket (admin/mod only)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "ticket_type",
							Description: "The type of ticket you are closing",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "report ticket", Value: db.TicketReport.String()},
								{Name: "suggestion ticket", Value: db.TicketSuggestion.String()},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "ticket_id",
							Description: "The ID of the ticket you are closing",
							Required:    true,
						},
					},
				},
			},
		},
	}
}

func (h *Tickets) Handle(ctx context.Context, i *discordgo.InteractionCreate) (proceed bool, err error) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		if data.Name != "ticket" || len(data.Options) == 0 {
			return true, nil
		}
		sub := data.Options[0]
		switch sub.Name {
		case "report":
			return false, h.openReportModal(i)
		case "suggestion":
			return false, h.openSuggestionModal(i)
		case "close":
			return false, h.closeTicket(ctx, i, sub.Options)
		}
		return true, nil

	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		switch data.CustomID {
		case reportModalID:
			return false, h.submitReport(ctx, i, data)
		case suggestionModalID:
			return false, h.submitSuggestion(ctx, i, data)
		}
		return true, nil
	}
	return true, nil
}

func (h *Tickets) openReportModal(i *discordgo.InteractionCreate) error {
	return discord.RespondModal(h.s.GetBot(), i.Interaction, reportModalID, "Report a user",
		discordgo.TextInput{
			CustomID:    reportAccusedInputID,
			Label:       "Who are you reporting?",
			Style:       discordgo.TextInputShort,
			Placeholder: "Username or user ID",
			Required:    true,
			MaxLength:   100,
		},
		discordgo.TextInput{
			CustomID:  reportReasonInputID,
			Label:     "Why are you reporting them?",
			Style:     discordgo.TextInputParagraph,
			Required:  true,
			MaxLength: 1000,
		},
	)
}

func (h *Tickets) openSuggestionModal(i *discordgo.InteractionCreate) error {
	return discord.RespondModal(h.s.GetBot(), i.Interaction, suggestionModalID, "Suggest a feature",
		discordgo.TextInput{
			CustomID:  suggestionTextInputID,
			Label:     "What would you like to suggest?",
			Style:     discordgo.TextInputParagraph,
			Required:  true,
			MaxLength: 1000,
		},
	)
}

func (h *Tickets) submitReport(ctx context.Context, i *discordgo.InteractionCreate, data discordgo.ModalSubmitInteractionData) error {
	session := h.s.GetBot()
	reporter := i.Member.User

	accused, err := discord.FindMember(session, h.s.GetConfig().GuildID, discord.ModalValue(data, reportAccusedInputID))
	if err != nil {
		if !errors.Is(err, discord.ErrMemberNotFound) {
			h.entry.WithError(err).Error("cant resolve accused member")
		}
		return discord.RespondEphemeral(session, i.Interaction, badMemberMsg)
	}

	_, err = h.workflow.Create(ctx, ticket.CreateRequest{
		Type:     db.TicketReport,
		Reporter: ticket.Member{ID: reporter.ID, Mention: reporter.Mention()},
		Accused:  ticket.Member{ID: accused.User.ID, Mention: accused.User.Mention()},
		Body:     discord.ModalValue(data, reportReasonInputID),
	})
	if err != nil {
		if errors.Is(err, ticket.ErrSelfReport) {
			return discord.RespondEphemeral(session, i.Interaction, selfReportMsg)
		}
		h.entry.WithError(err).Error("cant create report ticket")
		return discord.RespondEphemeral(session, i.Interaction, genericFailureMsg)
	}

	return discord.RespondEphemeral(session, i.Interaction, thanksReportMsg)
}

func (h *Tickets) submitSuggestion(ctx context.Context, i *discordgo.InteractionCreate, data discordgo.ModalSubmitInteractionData) error {
	session := h.s.GetBot()
	reporter := i.Member.User

	_, err := h.workflow.Create(ctx, ticket.CreateRequest{
		Type:     db.TicketSuggestion,
		Reporter: ticket.Member{ID: reporter.ID, Mention: reporter.Mention()},
		Body:     discord.ModalValue(data, suggestionTextInputID),
	})
	if err != nil {
		h.entry.WithError(err).Error("cant create suggestion ticket")
		return discord.RespondEphemeral(session, i.Interaction, genericFailureMsg)
	}

	return discord.RespondEphemeral(session, i.Interaction, thanksSuggestionMsg)
}

func (h *Tickets) closeTicket(ctx context.Context, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	session := h.s.GetBot()

	if !permissions.CanCloseTickets(i.Member, h.s.GetConfig().Tickets.AdminRoleID) {
		return discord.RespondEphemeral(session, i.Interaction, notAllowedMsg)
	}

	var (
		ticketType db.TicketType
		ticketID   int64
	)
	for _, option := range options {
		switch option.Name {
		case "ticket_type":
			t, err := db.ParseTicketType(option.StringValue())
			if err != nil {
				return discord.RespondEphemeral(session, i.Interaction, genericFailureMsg)
			}
			ticketType = t
		case "ticket_id":
			ticketID = option.IntValue()
		}
	}

	if err := h.workflow.Close(ctx, ticketType, ticketID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return discord.RespondEphemeral(session, i.Interaction,
				fmt.Sprintf("There are no %s tickets with the id: %d", ticketType, ticketID))
		}
		h.entry.WithError(err).Error("cant close ticket")
		return discord.RespondEphemeral(session, i.Interaction, genericFailureMsg)
	}

	return discord.RespondEphemeral(session, i.Interaction, ticketClosedMsg)
}
