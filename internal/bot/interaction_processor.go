package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type InteractionProcessor struct {
	s                   Service
	interactionHandlers []Handler
}

var registeredHandlers = make(map[string]Handler)

func RegisterInteractionHandler(title string, handler Handler) {
	registeredHandlers[title] = handler
}

func NewInteractionProcessor(s Service) *InteractionProcessor {
	enabledHandlers := make([]Handler, 0)
	for _, handlerName := range s.GetConfig().EnabledHandlers {
		if _, ok := registeredHandlers[handlerName]; !ok || registeredHandlers[handlerName] == nil {
			log.Warnf("no registered handler: %s", handlerName)
			continue
		}
		enabledHandlers = append(enabledHandlers, registeredHandlers[handlerName])
	}

	return &InteractionProcessor{
		s:                   s,
		interactionHandlers: enabledHandlers,
	}
}

// RegisterCommands overwrites the guild's slash commands with the union of
// all enabled handlers' commands. Must run after the session is open, the
// application id comes from the session state.
func (ip *InteractionProcessor) RegisterCommands() error {
	session := ip.s.GetBot()
	if session.State.User == nil {
		return errors.New("session is not open yet")
	}

	commands := make([]*discordgo.ApplicationCommand, 0)
	for _, handler := range ip.interactionHandlers {
		commands = append(commands, handler.Commands()...)
	}

	_, err := session.ApplicationCommandBulkOverwrite(session.State.User.ID, ip.s.GetConfig().GuildID, commands)
	if err != nil {
		return errors.WithMessage(err, "cant overwrite application commands")
	}
	log.Infof("registered %d application commands", len(commands))
	return nil
}

func (ip *InteractionProcessor) Process(ctx context.Context, i *discordgo.InteractionCreate) error {
	if i == nil {
		return errors.New("interaction is nil")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	for _, handler := range ip.interactionHandlers {
		if handler == nil {
			continue
		}
		proceed, err := handler.Handle(ctx, i)
		if err != nil {
			return errors.WithMessage(err, "handling error")
		}
		if !proceed {
			log.Trace("not proceeding")
			return nil
		}
	}
	return nil
}
