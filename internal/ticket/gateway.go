package ticket

import (
	"context"

	"store-ticket-bot/internal/discord/requests"
)

// Gateway is the part of the chat platform the ticket lifecycle needs.
type Gateway interface {
	// BotUserID returns the bot's own user id.
	BotUserID() string

	ResolveCategory(ctx context.Context, guildID, name string) (id string, found bool, err error)
	ResolveRole(ctx context.Context, guildID, name string) (id string, found bool, err error)

	// CreateChannel creates a text channel with the policy applied in the same call.
	CreateChannel(ctx context.Context, guildID, name, categoryID string, policy AccessPolicy) (string, error)
	DeleteChannel(ctx context.Context, channelID string) error
	SendMessage(ctx context.Context, channelID string, msg requests.Message) error
}

// WelcomeRenderer builds the first message posted into a new ticket channel.
type WelcomeRenderer interface {
	TicketWelcome(kind Kind, user Requester, roleID string) requests.Message
}
