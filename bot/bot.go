package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"store-ticket-bot/bot/messages"
	"store-ticket-bot/internal/database"
	"store-ticket-bot/internal/discord/requests"
	"store-ticket-bot/internal/logger"
	"store-ticket-bot/internal/storeconfig_parser"
	"store-ticket-bot/internal/ticket"

	"github.com/kballard/go-shellquote"
)

// Gateway is everything the router needs from the chat platform.
type Gateway interface {
	ticket.Gateway

	RespondToInteraction(ctx context.Context, ref requests.InteractionRef, msg requests.Message, visibility requests.Visibility) error
	DeferInteraction(ctx context.Context, ref requests.InteractionRef, visibility requests.Visibility) error
	EditInteractionResponse(ctx context.Context, ref requests.InteractionRef, msg requests.Message) error
	IsAdministrator(ctx context.Context, guildID, channelID, userID string) (bool, error)
	AddMemberRole(ctx context.Context, guildID, userID, roleID string) error
	ResolveTextChannel(ctx context.Context, guildID, name string) (id string, found bool, err error)
	Latency() time.Duration
}

type (
	// Command is a parsed prefix command.
	Command struct {
		Event requests.MessageEvent
		Name  string
		Args  []string
	}

	commandHandler func(ctx context.Context, cmd Command) error
	buttonHandler  func(ctx context.Context, ev requests.ButtonEvent) error
)

// Router maps inbound events to handlers through fixed tables.
type Router struct {
	gw          Gateway
	store       *storeconfig_parser.Store
	render      *messages.Renderer
	registry    *ticket.Registry
	provisioner *ticket.Provisioner
	closer      *ticket.Closer
	events      *database.EventLog
	welcome     *WelcomeSwitch
	prefix      string

	commands map[string]commandHandler
	buttons  map[string]buttonHandler
}

type Deps struct {
	Gateway     Gateway
	Store       *storeconfig_parser.Store
	Renderer    *messages.Renderer
	Registry    *ticket.Registry
	Provisioner *ticket.Provisioner
	Closer      *ticket.Closer
	Events      *database.EventLog
	Welcome     *WelcomeSwitch
	Prefix      string
}

func NewRouter(d Deps) *Router {
	r := &Router{
		gw:          d.Gateway,
		store:       d.Store,
		render:      d.Renderer,
		registry:    d.Registry,
		provisioner: d.Provisioner,
		closer:      d.Closer,
		events:      d.Events,
		welcome:     d.Welcome,
		prefix:      d.Prefix,
	}

	r.commands = map[string]commandHandler{
		"hello":     r.hello,
		"ping":      r.ping,
		"order":     r.send(r.render.Order),
		"thumbnail": r.send(r.render.ThumbnailAdvert),
		"faq":       r.send(r.render.FAQ),
		"terms":     r.send(r.render.Terms),
		"welcome":   r.adminOnly(r.toggleWelcome),
		"tickets":   r.adminOnly(r.ticketCount),
	}

	r.buttons = map[string]buttonHandler{
		messages.BUTTON_CLOSE: r.closeTicket,
	}
	for _, kind := range ticket.Kinds() {
		r.buttons[messages.OpenButtonID(kind)] = r.openTicket(kind)
	}

	return r
}

func (r *Router) HandleMessage(ctx context.Context, ev requests.MessageEvent) {
	if ev.FromBot || ev.GuildID == "" {
		return
	}

	name, args, ok := parseCommand(r.prefix, ev.Content)
	if !ok {
		return
	}
	handler, exist := r.commands[name]
	if !exist {
		logger.Debug("Unknown command:", name)
		return
	}
	if r.events.Seen("message:" + ev.ID) {
		logger.Info("Skip replayed message", ev.ID)
		return
	}

	logger.Debug("Command", name, "from", ev.Author.ID, "in", ev.ChannelID)

	if err := handler(ctx, Command{Event: ev, Name: name, Args: args}); err != nil {
		logger.Warning("Error while handle command", name, err)
	}
}

func (r *Router) HandleButton(ctx context.Context, ev requests.ButtonEvent) {
	handler, exist := r.buttons[ev.CustomID]
	if !exist {
		logger.Debug("Unknown button:", ev.CustomID)
		return
	}
	if r.events.Seen("interaction:" + ev.Interaction.ID) {
		logger.Info("Skip replayed interaction", ev.Interaction.ID)
		return
	}

	if err := handler(ctx, ev); err != nil {
		logger.Warning("Error while handle button", ev.CustomID, err)
	}
}

// parseCommand splits "!name args..." honoring quotes.
func parseCommand(prefix, content string) (string, []string, bool) {
	content = strings.TrimSpace(content)
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	content = strings.TrimPrefix(content, prefix)

	words, err := shellquote.Split(content)
	if err != nil {
		// незакрытые кавычки: разбираем по пробелам
		words = strings.Fields(content)
	}
	if len(words) == 0 {
		return "", nil, false
	}
	return strings.ToLower(words[0]), words[1:], true
}

func (r *Router) send(render func() requests.Message) commandHandler {
	return func(ctx context.Context, cmd Command) error {
		return r.gw.SendMessage(ctx, cmd.Event.ChannelID, render())
	}
}

func (r *Router) hello(ctx context.Context, cmd Command) error {
	return r.gw.SendMessage(ctx, cmd.Event.ChannelID, messages.Hello(cmd.Event.Author.Name))
}

func (r *Router) ping(ctx context.Context, cmd Command) error {
	return r.gw.SendMessage(ctx, cmd.Event.ChannelID, messages.Pong(r.gw.Latency()))
}

func (r *Router) adminOnly(next commandHandler) commandHandler {
	return func(ctx context.Context, cmd Command) error {
		admin, err := r.gw.IsAdministrator(ctx, cmd.Event.GuildID, cmd.Event.ChannelID, cmd.Event.Author.ID)
		if err != nil {
			return err
		}
		if !admin {
			return r.gw.SendMessage(ctx, cmd.Event.ChannelID, messages.Text(TEXT_NOT_ADMIN))
		}
		return next(ctx, cmd)
	}
}

func (r *Router) toggleWelcome(ctx context.Context, cmd Command) error {
	enabled := r.welcome.Toggle()
	logger.Event("Welcome system enabled:", enabled, "by", cmd.Event.Author.ID)

	return r.gw.SendMessage(ctx, cmd.Event.ChannelID, r.render.WelcomeToggle(enabled))
}

func (r *Router) ticketCount(ctx context.Context, cmd Command) error {
	return r.gw.SendMessage(ctx, cmd.Event.ChannelID, messages.TicketCount(r.registry.Len()))
}

func (r *Router) openTicket(kind ticket.Kind) buttonHandler {
	return func(ctx context.Context, ev requests.ButtonEvent) error {
		// создание канала может не уложиться в окно ответа на взаимодействие
		if err := r.gw.DeferInteraction(ctx, ev.Interaction, requests.Private); err != nil {
			return fmt.Errorf("defer interaction: %w", err)
		}

		user := ticket.Requester{ID: ev.User.ID, Name: ev.User.Name}

		channelID, err := r.provisioner.OpenTicket(ctx, kind, user, ev.GuildID)
		if err != nil {
			logger.Info("Ticket", kind, "for", user.ID, "not opened:", err)
			return r.gw.EditInteractionResponse(ctx, ev.Interaction, messages.Text(ticketErrorText(err)))
		}

		return r.gw.EditInteractionResponse(ctx, ev.Interaction, messages.Text(TEXT_TICKET_CREATED+messages.ChannelMention(channelID)))
	}
}

func (r *Router) closeTicket(ctx context.Context, ev requests.ButtonEvent) error {
	_, err := r.closer.CloseTicket(ctx, ev.ChannelID, ev.ChannelName, func(ctx context.Context, text string) error {
		return r.gw.RespondToInteraction(ctx, ev.Interaction, messages.Text(text), requests.Public)
	})
	if err != nil {
		return r.respondPrivate(ctx, ev, ticketErrorText(err))
	}
	return nil
}

func (r *Router) respondPrivate(ctx context.Context, ev requests.ButtonEvent, text string) error {
	return r.gw.RespondToInteraction(ctx, ev.Interaction, messages.Text(text), requests.Private)
}

// ticketErrorText turns lifecycle errors into what the user sees.
func ticketErrorText(err error) string {
	var tErr *ticket.Error
	if !errors.As(err, &tErr) {
		return TEXT_SOMETHING_WRONG
	}

	switch tErr.Kind {
	case ticket.KindAlreadyHasTicket:
		return TEXT_ALREADY_HAS_TICKET
	case ticket.KindConfigurationMissing:
		return configurationMissingText(tErr.Resource, tErr.Name)
	case ticket.KindProvisioningFailed:
		return TEXT_CREATE_FAILED + causeText(tErr)
	case ticket.KindNotATicketChannel:
		return TEXT_NOT_A_TICKET
	}
	return TEXT_SOMETHING_WRONG
}

func causeText(err *ticket.Error) string {
	if err.Err == nil {
		return "unknown error"
	}
	return err.Err.Error()
}
