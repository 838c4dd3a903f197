package ticket

import (
	"context"
	"fmt"
	"sync"

	"store-ticket-bot/internal/discord/requests"
)

const (
	testGuild = "guild-1"
	testBot   = "bot-1"
)

type createdChannel struct {
	ID       string
	Name     string
	Category string
	Policy   AccessPolicy
}

type sentMessage struct {
	ChannelID string
	Message   requests.Message
}

type fakeGateway struct {
	mu sync.Mutex

	categories map[string]string
	roles      map[string]string

	createErr error
	// если задан, CreateChannel ждет его закрытия
	createGate    chan struct{}
	createStarted chan struct{}

	deleteErr error
	sendErr   error

	created []createdChannel
	deleted []string
	sent    []sentMessage
	nextID  int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		categories: map[string]string{
			"[💸] PURCHASE":   "cat-purchase",
			"[🎨] THUMBNAILS": "cat-thumbnails",
		},
		roles: map[string]string{"Founder👑": "role-founder"},
	}
}

func (g *fakeGateway) BotUserID() string { return testBot }

func (g *fakeGateway) ResolveCategory(_ context.Context, _, name string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, ok := g.categories[name]
	return id, ok, nil
}

func (g *fakeGateway) ResolveRole(_ context.Context, _, name string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, ok := g.roles[name]
	return id, ok, nil
}

func (g *fakeGateway) CreateChannel(_ context.Context, _, name, categoryID string, policy AccessPolicy) (string, error) {
	if g.createStarted != nil {
		g.createStarted <- struct{}{}
	}
	if g.createGate != nil {
		<-g.createGate
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return "", g.createErr
	}
	g.nextID++
	id := fmt.Sprintf("chan-%d", g.nextID)
	g.created = append(g.created, createdChannel{ID: id, Name: name, Category: categoryID, Policy: policy})
	return id, nil
}

func (g *fakeGateway) DeleteChannel(_ context.Context, channelID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleted = append(g.deleted, channelID)
	return g.deleteErr
}

func (g *fakeGateway) SendMessage(_ context.Context, channelID string, msg requests.Message) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, sentMessage{ChannelID: channelID, Message: msg})
	return g.sendErr
}

func (g *fakeGateway) createdCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.created)
}

func (g *fakeGateway) deletedChannels() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.deleted...)
}

type stubWelcome struct{}

func (stubWelcome) TicketWelcome(kind Kind, user Requester, roleID string) requests.Message {
	return requests.Message{
		Content:  fmt.Sprintf("<@%s> <@&%s>", user.ID, roleID),
		Mentions: requests.Mentions{Users: []string{user.ID}, Roles: []string{roleID}},
		Embed:    &requests.Embed{Title: kind.String()},
	}
}

func testKinds() []Descriptor {
	return []Descriptor{
		{Kind: Purchase, Category: "[💸] PURCHASE", Role: "Founder👑", Prefix: "purchase-"},
		{Kind: Thumbnail, Category: "[🎨] THUMBNAILS", Role: "Founder👑", Prefix: "thumbnail-"},
	}
}
