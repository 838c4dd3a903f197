package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"store-ticket-bot/internal/discord/requests"
	"store-ticket-bot/internal/logger"
	"store-ticket-bot/internal/ticket"

	"github.com/bwmarrin/discordgo"
)

const (
	INTENTS = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent

	// сколько живёт обработка одного события
	EVENT_TIMEOUT = 30 * time.Second
)

// Client adapts a discordgo session to the bot's gateway interfaces.
type Client struct {
	s *discordgo.Session
}

func New(token string) (*Client, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	s.Identify.Intents = INTENTS
	s.StateEnabled = true

	return &Client{s: s}, nil
}

func (c *Client) Open() error {
	logger.Info("Connecting to Discord gateway...")
	if err := c.s.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	logger.Info("Logged in as", c.s.State.User.Username)
	return nil
}

func (c *Client) Close() error {
	logger.Info("Disconnecting from Discord gateway...")
	return c.s.Close()
}

func (c *Client) BotUserID() string {
	if c.s.State == nil || c.s.State.User == nil {
		return ""
	}
	return c.s.State.User.ID
}

func (c *Client) Latency() time.Duration {
	return c.s.HeartbeatLatency()
}

func (c *Client) guildChannels(ctx context.Context, guildID string) ([]*discordgo.Channel, error) {
	if g, err := c.s.State.Guild(guildID); err == nil && len(g.Channels) > 0 {
		return g.Channels, nil
	}
	return c.s.GuildChannels(guildID, discordgo.WithContext(ctx))
}

func (c *Client) findChannel(ctx context.Context, guildID, name string, kind discordgo.ChannelType) (string, bool, error) {
	channels, err := c.guildChannels(ctx, guildID)
	if err != nil {
		return "", false, err
	}
	for _, ch := range channels {
		if ch.Type == kind && ch.Name == name {
			return ch.ID, true, nil
		}
	}
	return "", false, nil
}

func (c *Client) ResolveCategory(ctx context.Context, guildID, name string) (string, bool, error) {
	return c.findChannel(ctx, guildID, name, discordgo.ChannelTypeGuildCategory)
}

func (c *Client) ResolveTextChannel(ctx context.Context, guildID, name string) (string, bool, error) {
	return c.findChannel(ctx, guildID, name, discordgo.ChannelTypeGuildText)
}

func (c *Client) ResolveRole(ctx context.Context, guildID, name string) (string, bool, error) {
	roles, err := c.s.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return "", false, err
	}
	for _, r := range roles {
		if r.Name == name {
			return r.ID, true, nil
		}
	}
	return "", false, nil
}

func permissionBits(p ticket.Permission) int64 {
	var bits int64
	if p.Has(ticket.PermView) {
		bits |= discordgo.PermissionViewChannel
	}
	if p.Has(ticket.PermSend) {
		bits |= discordgo.PermissionSendMessages
	}
	return bits
}

func overwrites(policy ticket.AccessPolicy) []*discordgo.PermissionOverwrite {
	out := make([]*discordgo.PermissionOverwrite, 0, len(policy))
	for _, g := range policy {
		typ := discordgo.PermissionOverwriteTypeRole
		if g.Type == ticket.PrincipalMember {
			typ = discordgo.PermissionOverwriteTypeMember
		}
		out = append(out, &discordgo.PermissionOverwrite{
			ID:    g.PrincipalID,
			Type:  typ,
			Allow: permissionBits(g.Allow),
			Deny:  permissionBits(g.Deny),
		})
	}
	return out
}

func (c *Client) CreateChannel(ctx context.Context, guildID, name, categoryID string, policy ticket.AccessPolicy) (string, error) {
	ch, err := c.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		ParentID:             categoryID,
		PermissionOverwrites: overwrites(policy),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}

	logger.Debug("Channel created", ch.ID, ch.Name)
	return ch.ID, nil
}

func (c *Client) DeleteChannel(ctx context.Context, channelID string) error {
	_, err := c.s.ChannelDelete(channelID, discordgo.WithContext(ctx))
	if err == nil {
		return nil
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownChannel {
		return ticket.ErrUnknownChannel
	}
	return err
}

func (c *Client) SendMessage(ctx context.Context, channelID string, msg requests.Message) error {
	_, err := c.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:         msg.Content,
		Embeds:          embeds(msg.Embed),
		Components:      components(msg.Buttons),
		AllowedMentions: allowedMentions(msg.Mentions),
	}, discordgo.WithContext(ctx))
	return err
}

func (c *Client) RespondToInteraction(ctx context.Context, ref requests.InteractionRef, msg requests.Message, visibility requests.Visibility) error {
	data := &discordgo.InteractionResponseData{
		Content:         msg.Content,
		Embeds:          embeds(msg.Embed),
		Components:      components(msg.Buttons),
		AllowedMentions: allowedMentions(msg.Mentions),
	}
	if visibility == requests.Private {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return c.s.InteractionRespond(
		interaction(ref),
		&discordgo.InteractionResponse{Type: discordgo.InteractionResponseChannelMessageWithSource, Data: data},
		discordgo.WithContext(ctx),
	)
}

func interaction(ref requests.InteractionRef) *discordgo.Interaction {
	return &discordgo.Interaction{ID: ref.ID, AppID: ref.AppID, Token: ref.Token}
}

// DeferInteraction acknowledges the interaction now; the reply comes later
// through EditInteractionResponse.
func (c *Client) DeferInteraction(ctx context.Context, ref requests.InteractionRef, visibility requests.Visibility) error {
	data := &discordgo.InteractionResponseData{}
	if visibility == requests.Private {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return c.s.InteractionRespond(
		interaction(ref),
		&discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredChannelMessageWithSource, Data: data},
		discordgo.WithContext(ctx),
	)
}

func (c *Client) EditInteractionResponse(ctx context.Context, ref requests.InteractionRef, msg requests.Message) error {
	_, err := c.s.InteractionResponseEdit(interaction(ref), webhookEdit(msg), discordgo.WithContext(ctx))
	return err
}

func webhookEdit(msg requests.Message) *discordgo.WebhookEdit {
	content := msg.Content
	edit := &discordgo.WebhookEdit{
		Content:         &content,
		AllowedMentions: allowedMentions(msg.Mentions),
	}
	if e := embeds(msg.Embed); e != nil {
		edit.Embeds = &e
	}
	if c := components(msg.Buttons); c != nil {
		edit.Components = &c
	}
	return edit
}

func (c *Client) IsAdministrator(ctx context.Context, guildID, channelID, userID string) (bool, error) {
	perms, err := c.s.UserChannelPermissions(userID, channelID, discordgo.WithContext(ctx))
	if err != nil {
		return false, err
	}
	return perms&discordgo.PermissionAdministrator != 0, nil
}

func (c *Client) AddMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	return c.s.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx))
}

func embeds(e *requests.Embed) []*discordgo.MessageEmbed {
	if e == nil {
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	for _, f := range e.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	if e.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	return []*discordgo.MessageEmbed{embed}
}

func components(buttons []requests.Button) []discordgo.MessageComponent {
	if len(buttons) == 0 {
		return nil
	}

	row := discordgo.ActionsRow{}
	for _, b := range buttons {
		btn := discordgo.Button{
			CustomID: b.CustomID,
			Label:    b.Label,
			Style:    discordgo.PrimaryButton,
		}
		if b.Style == requests.ButtonDanger {
			btn.Style = discordgo.DangerButton
		}
		if b.Emoji != "" {
			btn.Emoji = &discordgo.ComponentEmoji{Name: b.Emoji}
		}
		row.Components = append(row.Components, btn)
	}
	return []discordgo.MessageComponent{row}
}

// allowedMentions pings only the users and roles listed in the message.
func allowedMentions(m requests.Mentions) *discordgo.MessageAllowedMentions {
	return &discordgo.MessageAllowedMentions{
		Parse: []discordgo.AllowedMentionType{},
		Users: m.Users,
		Roles: m.Roles,
	}
}
