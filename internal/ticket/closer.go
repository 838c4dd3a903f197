package ticket

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"store-ticket-bot/internal/discord/requests"
	"store-ticket-bot/internal/logger"
)

const DefaultCloseDelay = 5 * time.Second

// Announcer tells the channel that it is about to be deleted.
type Announcer func(ctx context.Context, text string) error

// Closer validates and tears down ticket channels.
type Closer struct {
	registry  *Registry
	gateway   Gateway
	scheduler *Scheduler
	prefixes  []string
	delay     time.Duration

	deleteTimeout time.Duration
}

func NewCloser(registry *Registry, gateway Gateway, scheduler *Scheduler, kinds []Descriptor, delay time.Duration) *Closer {
	if delay <= 0 {
		delay = DefaultCloseDelay
	}
	c := &Closer{
		registry:      registry,
		gateway:       gateway,
		scheduler:     scheduler,
		delay:         delay,
		deleteTimeout: 10 * time.Second,
	}
	for _, d := range kinds {
		c.prefixes = append(c.prefixes, d.Prefix)
	}
	return c
}

// IsTicketChannel reports whether the name carries one of the ticket prefixes.
func (c *Closer) IsTicketChannel(channelName string) bool {
	for _, prefix := range c.prefixes {
		if strings.HasPrefix(channelName, prefix) {
			return true
		}
	}
	return false
}

func (c *Closer) Delay() time.Duration { return c.delay }

// CloseNotice is the text announced before deletion.
func (c *Closer) CloseNotice() string {
	return fmt.Sprintf("🔒 Closing ticket in %d seconds...", int(c.delay.Round(time.Second)/time.Second))
}

// CloseTicket frees the owner's slot right away and schedules the channel
// deletion after the grace delay. The deletion outcome is only logged.
// A nil announce posts the notice as a plain channel message.
func (c *Closer) CloseTicket(ctx context.Context, channelID, channelName string, announce Announcer) (*Task, error) {
	if !c.IsTicketChannel(channelName) {
		return nil, ErrNotATicketChannel
	}

	if t, found := c.registry.FindByChannel(channelID); found {
		c.registry.Remove(t.UserID)
		logger.Event("Ticket", t.ID, "closed:", t.Kind, "channel", channelID, "user", t.UserID)
	} else {
		logger.Info("Close requested for untracked ticket channel", channelName, channelID)
	}

	if announce == nil {
		announce = func(ctx context.Context, text string) error {
			return c.gateway.SendMessage(ctx, channelID, requests.Message{Content: text})
		}
	}
	if err := announce(ctx, c.CloseNotice()); err != nil {
		logger.Warning("Error while announce ticket close in", channelID, err)
	}

	task := c.scheduler.After(c.delay, channelID, func() {
		c.deleteChannel(channelID)
	})

	return task, nil
}

func (c *Closer) deleteChannel(channelID string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.deleteTimeout)
	defer cancel()

	err := c.gateway.DeleteChannel(ctx, channelID)
	switch {
	case err == nil:
		logger.Event("Ticket channel", channelID, "deleted")
	case errors.Is(err, ErrUnknownChannel):
		logger.Info("Ticket channel", channelID, "already gone")
	default:
		logger.Warning("Error while delete ticket channel", channelID, err)
	}
}
