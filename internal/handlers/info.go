package handlers

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/hearthbot/hearth/internal/bot"
	"github.com/hearthbot/hearth/internal/infrastructure/discord"
)

const blurple = 0x5865f2

type Info struct {
	s         bot.Service
	startTime time.Time
	entry     *log.Entry
}

func NewInfo(s bot.Service) *Info {
	return &Info{
		s:         s,
		startTime: time.Now(),
		entry:     log.WithField("handler", "info"),
	}
}

func (h *Info) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "info",
			Description: "Get all info on the bot",
		},
		{
			Name:        "echo",
			Description: "Echo a message back to the chat",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message",
					Description: "The message to echo",
					Required:    true,
				},
			},
		},
		{
			Name:        "host",
			Description: "Server commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "uptime",
					Description: "Get the uptime of the bot",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "info",
					Description: "Get info on the bot & server",
				},
			},
		},
	}
}

func (h *Info) Handle(ctx context.Context, i *discordgo.InteractionCreate) (proceed bool, err error) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return true, nil
	}

	data := i.ApplicationCommandData()
	switch data.Name {
	case "info":
		return false, h.botInfo(i)
	case "echo":
		return false, h.echo(i, data)
	case "host":
		if len(data.Options) == 0 {
			return false, nil
		}
		switch data.Options[0].Name {
		case "uptime":
			return false, h.hostUptime(i)
		case "info":
			return false, h.hostInfo(i)
		}
		return false, nil
	}
	return true, nil
}

func (h *Info) uptime() time.Duration {
	return time.Since(h.startTime).Round(time.Second)
}

func (h *Info) botInfo(i *discordgo.InteractionCreate) error {
	embed := &discordgo.MessageEmbed{
		Title: "Info",
		Description: fmt.Sprintf("```Go Ver: %s\nSystem: %s\nUptime: %s\n```",
			strings.TrimPrefix(runtime.Version(), "go"),
			runtime.GOOS,
			h.uptime(),
		),
		Color: blurple,
	}
	return discord.RespondEmbed(h.s.GetBot(), i.Interaction, embed)
}

func (h *Info) echo(i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	message := ""
	if len(data.Options) > 0 {
		message = data.Options[0].StringValue()
	}
	return discord.RespondMessage(h.s.GetBot(), i.Interaction, message)
}

func (h *Info) hostUptime(i *discordgo.InteractionCreate) error {
	return discord.RespondEphemeral(h.s.GetBot(), i.Interaction, fmt.Sprintf("Uptime: %s", h.uptime()))
}

func (h *Info) hostInfo(i *discordgo.InteractionCreate) error {
	session := h.s.GetBot()

	botName := "unknown"
	botID := "unknown"
	if session.State != nil && session.State.User != nil {
		botName = session.State.User.Username
		botID = session.State.User.ID
	}

	embed := &discordgo.MessageEmbed{
		Title: "Server Info",
		Color: blurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Bot", Value: fmt.Sprintf("%s (%s)", botName, botID)},
			{Name: "Go", Value: runtime.Version()},
			{Name: "OS", Value: fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
			{Name: "Uptime", Value: h.uptime().String()},
			{Name: "Start Time", Value: h.startTime.Format(time.RFC1123)},
			{Name: "Latency", Value: fmt.Sprintf("%dms", session.HeartbeatLatency().Milliseconds())},
		},
	}
	return discord.RespondEmbed(session, i.Interaction, embed)
}
