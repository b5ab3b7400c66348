package discord

import (
	"context"
	"regexp"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
)

var ErrMemberNotFound = errors.New("member not found")

// ChannelProvisioner provisions per-ticket text channels inside the
// configured guild category.
type ChannelProvisioner struct {
	session    *discordgo.Session
	guildID    string
	categoryID string
}

func NewChannelProvisioner(session *discordgo.Session, guildID, categoryID string) *ChannelProvisioner {
	return &ChannelProvisioner{
		session:    session,
		guildID:    guildID,
		categoryID: categoryID,
	}
}

func (p *ChannelProvisioner) CreateChannel(ctx context.Context, name string) (string, error) {
	channel, err := p.session.GuildChannelCreateComplex(p.guildID, discordgo.GuildChannelCreateData{
		Name:     name,
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: p.categoryID,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", errors.WithMessage(err, "cant create guild channel")
	}
	return channel.ID, nil
}

func (p *ChannelProvisioner) DeleteChannel(ctx context.Context, channelID string) error {
	if _, err := p.session.ChannelDelete(channelID, discordgo.WithContext(ctx)); err != nil {
		return errors.WithMessage(err, "cant delete guild channel")
	}
	return nil
}

func (p *ChannelProvisioner) PostSummary(ctx context.Context, channelID string, embed *discordgo.MessageEmbed) error {
	if _, err := p.session.ChannelMessageSendEmbed(channelID, embed, discordgo.WithContext(ctx)); err != nil {
		return errors.WithMessage(err, "cant post summary embed")
	}
	return nil
}

func RespondMessage(s *discordgo.Session, i *discordgo.Interaction, content string) error {
	return s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
}

func RespondEphemeral(s *discordgo.Session, i *discordgo.Interaction, content string) error {
	return s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func RespondEmbed(s *discordgo.Session, i *discordgo.Interaction, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func RespondModal(s *discordgo.Session, i *discordgo.Interaction, customID, title string, inputs ...discordgo.TextInput) error {
	components := make([]discordgo.MessageComponent, 0, len(inputs))
	for _, input := range inputs {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{input},
		})
	}
	return s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: components,
		},
	})
}

// ModalValue extracts a text input's submitted value by its custom id.
func ModalValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, component := range data.Components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			input, ok := inner.(*discordgo.TextInput)
			if !ok {
				continue
			}
			if input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}

var snowflakeRE = regexp.MustCompile(`^\d{5,}$`)

// FindMember resolves a guild member from free-form user input: a raw id, a
// mention, or a username to search for.
func FindMember(s *discordgo.Session, guildID, query string) (*discordgo.Member, error) {
	if query == "" {
		return nil, ErrMemberNotFound
	}

	if mention := stripMention(query); snowflakeRE.MatchString(mention) {
		member, err := s.GuildMember(guildID, mention)
		if err == nil {
			return member, nil
		}
	}

	members, err := s.GuildMembersSearch(guildID, query, 1)
	if err != nil {
		return nil, errors.WithMessage(err, "cant search guild members")
	}
	if len(members) == 0 {
		return nil, ErrMemberNotFound
	}
	return members[0], nil
}

func stripMention(query string) string {
	if len(query) > 3 && query[0] == '<' && query[1] == '@' && query[len(query)-1] == '>' {
		query = query[2 : len(query)-1]
		if len(query) > 0 && query[0] == '!' {
			query = query[1:]
		}
	}
	return query
}
