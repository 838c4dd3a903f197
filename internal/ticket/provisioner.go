package ticket

import (
	"context"
	"fmt"
	"time"

	"store-ticket-bot/internal/logger"
)

// Provisioner opens ticket channels.
type Provisioner struct {
	registry *Registry
	gateway  Gateway
	welcome  WelcomeRenderer
	kinds    map[Kind]Descriptor

	// таймаут на отправку приветствия в созданный канал
	sendTimeout time.Duration
}

func NewProvisioner(registry *Registry, gateway Gateway, welcome WelcomeRenderer, kinds []Descriptor) *Provisioner {
	p := &Provisioner{
		registry:    registry,
		gateway:     gateway,
		welcome:     welcome,
		kinds:       make(map[Kind]Descriptor, len(kinds)),
		sendTimeout: 10 * time.Second,
	}
	for _, d := range kinds {
		p.kinds[d.Kind] = d
	}
	return p
}

// OpenTicket creates a private channel for the requester. Nothing external
// is touched before the registry slot is reserved, and the slot is released
// on every failure that happens before the channel exists.
func (p *Provisioner) OpenTicket(ctx context.Context, kind Kind, user Requester, guildID string) (string, error) {
	desc, ok := p.kinds[kind]
	if !ok {
		return "", configurationMissing("ticket kind", kind.String())
	}

	if !p.registry.TryReserve(user.ID) {
		return "", ErrAlreadyHasTicket
	}

	categoryID, roleID, err := p.resolve(ctx, guildID, desc)
	if err != nil {
		p.registry.Abort(user.ID)
		return "", err
	}

	name := ChannelName(desc.Prefix, user.Name)
	policy := BuildAccessPolicy(guildID, user.ID, roleID, p.gateway.BotUserID())

	channelID, err := p.gateway.CreateChannel(ctx, guildID, name, categoryID, policy)
	if err != nil {
		p.registry.Abort(user.ID)
		return "", provisioningFailed(err)
	}

	t, err := p.registry.Commit(user.ID, channelID, kind)
	if err != nil {
		// канал создан, но закрепить его не получилось: убираем канал
		p.registry.Abort(user.ID)
		if delErr := p.gateway.DeleteChannel(context.WithoutCancel(ctx), channelID); delErr != nil {
			logger.Warning("Can't delete orphan channel", channelID, delErr)
		}
		return "", provisioningFailed(fmt.Errorf("commit ticket: %w", err))
	}

	logger.Event("Ticket", t.ID, "opened:", kind, "channel", channelID, "for user", user.ID)

	// тикет уже существует, ошибки отправки только логируем
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.sendTimeout)
	defer cancel()
	if err := p.gateway.SendMessage(sendCtx, channelID, p.welcome.TicketWelcome(kind, user, roleID)); err != nil {
		logger.Warning("Error while send ticket welcome to", channelID, err)
	}

	return channelID, nil
}

func (p *Provisioner) resolve(ctx context.Context, guildID string, desc Descriptor) (categoryID, roleID string, err error) {
	categoryID, found, err := p.gateway.ResolveCategory(ctx, guildID, desc.Category)
	if err != nil {
		return "", "", provisioningFailed(fmt.Errorf("resolve category: %w", err))
	}
	if !found {
		return "", "", configurationMissing("category", desc.Category)
	}

	roleID, found, err = p.gateway.ResolveRole(ctx, guildID, desc.Role)
	if err != nil {
		return "", "", provisioningFailed(fmt.Errorf("resolve role: %w", err))
	}
	if !found {
		return "", "", configurationMissing("role", desc.Role)
	}

	return categoryID, roleID, nil
}
