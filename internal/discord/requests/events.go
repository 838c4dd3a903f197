package requests

import "context"

type (
	// автор события
	User struct {
		ID   string
		Name string
	}

	// текстовое сообщение в канале гильдии
	MessageEvent struct {
		ID        string
		GuildID   string
		ChannelID string
		Author    User
		FromBot   bool
		Content   string
	}

	// нажатие на кнопку
	ButtonEvent struct {
		Interaction InteractionRef
		GuildID     string
		ChannelID   string
		ChannelName string
		User        User
		CustomID    string
	}

	// новый участник гильдии
	MemberJoinEvent struct {
		GuildID string
		Member  User
	}
)

// EventHandler receives inbound gateway events. Calls may run concurrently.
type EventHandler interface {
	HandleMessage(ctx context.Context, ev MessageEvent)
	HandleButton(ctx context.Context, ev ButtonEvent)
	HandleMemberJoin(ctx context.Context, ev MemberJoinEvent)
}
