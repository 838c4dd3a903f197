package client

import (
	"context"

	"store-ticket-bot/internal/discord/requests"
	"store-ticket-bot/internal/goroutine"
	"store-ticket-bot/internal/logger"

	"github.com/bwmarrin/discordgo"
)

// HandleEvents converts gateway events and passes them to h. discordgo
// calls every handler in its own goroutine.
func (c *Client) HandleEvents(h requests.EventHandler) {
	c.s.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		logger.Info("Gateway ready, guilds:", len(r.Guilds))
	})

	c.s.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil {
			return
		}
		ev := requests.MessageEvent{
			ID:        m.ID,
			GuildID:   m.GuildID,
			ChannelID: m.ChannelID,
			Author:    user(m.Author),
			FromBot:   m.Author.Bot,
			Content:   m.Content,
		}
		handle("message", func(ctx context.Context) { h.HandleMessage(ctx, ev) })
	})

	c.s.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionMessageComponent {
			return
		}
		ev := requests.ButtonEvent{
			Interaction: requests.InteractionRef{ID: i.ID, AppID: i.AppID, Token: i.Token},
			GuildID:     i.GuildID,
			ChannelID:   i.ChannelID,
			CustomID:    i.MessageComponentData().CustomID,
		}
		switch {
		case i.Member != nil && i.Member.User != nil:
			ev.User = user(i.Member.User)
		case i.User != nil:
			ev.User = user(i.User)
		}
		handle("interaction", func(ctx context.Context) {
			ev.ChannelName = c.channelName(ctx, ev.ChannelID)
			h.HandleButton(ctx, ev)
		})
	})

	c.s.AddHandler(func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
		if m.Member == nil || m.User == nil {
			return
		}
		ev := requests.MemberJoinEvent{GuildID: m.GuildID, Member: user(m.User)}
		handle("member join", func(ctx context.Context) { h.HandleMemberJoin(ctx, ev) })
	})
}

func handle(name string, fn func(ctx context.Context)) {
	goroutine.Guard(name, func() {
		ctx, cancel := context.WithTimeout(context.Background(), EVENT_TIMEOUT)
		defer cancel()
		fn(ctx)
	})()
}

func user(u *discordgo.User) requests.User {
	return requests.User{ID: u.ID, Name: u.Username}
}

func (c *Client) channelName(ctx context.Context, channelID string) string {
	if ch, err := c.s.State.Channel(channelID); err == nil {
		return ch.Name
	}
	ch, err := c.s.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		logger.Warning("Can't get channel", channelID, err)
		return ""
	}
	return ch.Name
}
