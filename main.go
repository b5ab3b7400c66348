package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/hearthbot/hearth/internal/bot"
	"github.com/hearthbot/hearth/internal/config"
	"github.com/hearthbot/hearth/internal/db/sqlite"
	"github.com/hearthbot/hearth/internal/handlers"
	"github.com/hearthbot/hearth/internal/infra"
	"github.com/hearthbot/hearth/internal/infrastructure/discord"
	"github.com/hearthbot/hearth/internal/lifecycle"
	"github.com/hearthbot/hearth/internal/logging"
	"github.com/hearthbot/hearth/internal/observability"
	"github.com/hearthbot/hearth/internal/ticket"
)

func main() {
	cfg := config.Get()
	log.SetFormatter(&config.HearthFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.Level(cfg.LogLevel))

	logFile, err := logging.Setup(infra.GetWorkDir("logs"), time.Duration(cfg.Logs.MaxAgeDays)*24*time.Hour)
	if err != nil {
		log.WithError(err).Fatalln("cant set up file logging")
	}
	defer logFile.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	observability.Init()

	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		log.WithError(err).Fatalln("cant initialize discord session")
	}
	session.Identify.Intents = discordgo.IntentsGuilds
	if log.Level(cfg.LogLevel) == log.TraceLevel {
		session.LogLevel = discordgo.LogDebug
	}

	dbClient, err := sqlite.NewSQLiteClient(ctx, infra.GetWorkDir(), "hearth.db")
	if err != nil {
		log.WithError(err).Fatalln("cant open db")
	}
	defer dbClient.Close()

	service := bot.NewService(session, dbClient, cfg)
	provisioner := discord.NewChannelProvisioner(session, cfg.GuildID, cfg.Tickets.CategoryID)
	workflow := ticket.NewWorkflow(dbClient, provisioner)

	bot.RegisterInteractionHandler("tickets", handlers.NewTickets(service, workflow))
	bot.RegisterInteractionHandler("info", handlers.NewInfo(service))

	// Interactions are queued and consumed by a single loop, one at a time.
	processor := bot.NewInteractionProcessor(service)
	interactions := make(chan *discordgo.InteractionCreate, 64)
	session.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		select {
		case interactions <- i:
		case <-ctx.Done():
		}
	})
	go infra.GoRecoverable(-1, "process_interactions", func() {
		for {
			select {
			case <-ctx.Done():
				return
			case i := <-interactions:
				if err := processor.Process(ctx, i); err != nil {
					log.WithError(err).Errorln("cant process interaction")
				}
			}
		}
	})

	if err := session.Open(); err != nil {
		log.WithError(err).Fatalln("cant open gateway connection")
	}
	defer session.Close()

	if err := processor.RegisterCommands(); err != nil {
		log.WithError(err).Fatalln("cant register application commands")
	}

	components := lifecycle.NewRuntime(
		ticket.NewSweeper(dbClient, cfg.Tickets.SweepInterval, cfg.Tickets.PendingTimeout),
	)
	if err := components.Start(ctx); err != nil {
		log.WithError(err).Fatalln("cant start components")
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		if err := components.Stop(stopCtx); err != nil {
			log.WithError(err).Errorln("cant stop components")
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return observability.Serve(gctx, cfg.MetricsAddr)
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			return gctx.Err()
		case <-infra.MonitorExecutable(gctx):
			return errors.New("executable file was modified")
		}
	})

	log.Infoln("hearth is up")
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Errorln("shutting down")
	}
}
