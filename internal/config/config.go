package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-envconfig"
	log "github.com/sirupsen/logrus"
)

type (
	Config struct {
		DiscordBotToken string   `env:"TOKEN,required"`
		GuildID         string   `env:"GUILD_ID,required"`
		EnabledHandlers []string `env:"HANDLERS,default=tickets,info"`
		LogLevel        int      `env:"LOG_LEVEL,default=4"`
		DotPath         string   `env:"DOT_PATH,default=~/.hearth"`
		MetricsAddr     string   `env:"METRICS_ADDR,default=:2112"`
		Tickets         Tickets
		Logs            Logs
	}

	Tickets struct {
		CategoryID     string        `env:"TICKET_CATEGORY_ID"`
		AdminRoleID    string        `env:"TICKET_ADMIN_ROLE_ID"`
		SweepInterval  time.Duration `env:"TICKET_SWEEP_INTERVAL,default=5m"`
		PendingTimeout time.Duration `env:"TICKET_PENDING_TIMEOUT,default=10m"`
	}

	Logs struct {
		MaxAgeDays int `env:"LOG_MAX_AGE_DAYS,default=7"`
	}
)

var (
	once         sync.Once
	globalConfig = &Config{}
	globalErr    error
)

func Load() (Config, error) {
	once.Do(func() {
		cfg := &Config{}
		envcfg := envconfig.Config{
			Lookuper: envconfig.PrefixLookuper("HEARTH_", envconfig.OsLookuper()),
			Target:   cfg,
		}
		if err := envconfig.ProcessWith(context.Background(), &envcfg); err != nil {
			globalErr = fmt.Errorf("process env config: %w", err)
			return
		}
		home, err := os.UserHomeDir()
		if err != nil {
			globalErr = fmt.Errorf("get user home directory: %w", err)
			return
		}
		cfg.DotPath = strings.Replace(cfg.DotPath, "~", home, 1)
		log.Traceln("loaded config")
		globalConfig = cfg
	})
	return *globalConfig, globalErr
}

func Get() Config {
	cfg, err := Load()
	if err != nil {
		log.WithField("error", err.Error()).Error("cant load config")
	}
	return cfg
}
