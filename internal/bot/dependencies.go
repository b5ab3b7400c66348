package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/hearthbot/hearth/internal/config"
	"github.com/hearthbot/hearth/internal/db"
)

// ServiceBot defines session-specific operations
type ServiceBot interface {
	GetBot() *discordgo.Session
}

// ServiceDB defines database-specific operations
type ServiceDB interface {
	GetDB() db.Client
}

// Service defines the core bot service interface
type Service interface {
	ServiceBot
	ServiceDB
	GetConfig() config.Config
}

// Handler defines the interface for all interaction handlers in the system.
// Commands returns the slash commands the handler wants registered against
// the guild; Handle consumes one interaction and reports whether later
// handlers should still see it.
type Handler interface {
	Commands() []*discordgo.ApplicationCommand
	Handle(ctx context.Context, i *discordgo.InteractionCreate) (proceed bool, err error)
}
