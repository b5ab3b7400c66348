package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/hearthbot/hearth/internal/config"
	"github.com/hearthbot/hearth/internal/db"
)

type service struct {
	session *discordgo.Session
	db      db.Client
	cfg     config.Config
}

func NewService(session *discordgo.Session, db db.Client, cfg config.Config) *service {
	return &service{
		session: session,
		db:      db,
		cfg:     cfg,
	}
}

func (s *service) GetBot() *discordgo.Session {
	return s.session
}

func (s *service) GetDB() db.Client {
	return s.db
}

func (s *service) GetConfig() config.Config {
	return s.cfg
}
