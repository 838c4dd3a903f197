package messages

import (
	"fmt"
	"strings"
	"time"

	"store-ticket-bot/internal/discord/requests"
	"store-ticket-bot/internal/storeconfig_parser"
	"store-ticket-bot/internal/ticket"
)

const (
	BUTTON_OPEN_PREFIX = "ticket:open:"
	BUTTON_CLOSE       = "ticket:close"

	COLOR_ENABLED  = 0x00FF00
	COLOR_DISABLED = 0xFF0000
	COLOR_FAQ      = 0xFFA500
	COLOR_TERMS    = 0x5865F2

	// пустое имя поля Discord не принимает
	blankField = "\u200b"
)

func UserMention(id string) string    { return "<@" + id + ">" }
func RoleMention(id string) string    { return "<@&" + id + ">" }
func ChannelMention(id string) string { return "<#" + id + ">" }

func OpenButtonID(kind ticket.Kind) string { return BUTTON_OPEN_PREFIX + kind.String() }

// Renderer builds every message the bot posts from the current store config.
type Renderer struct {
	store *storeconfig_parser.Store
}

func NewRenderer(store *storeconfig_parser.Store) *Renderer {
	return &Renderer{store: store}
}

func CloseButton() requests.Button {
	return requests.Button{CustomID: BUTTON_CLOSE, Label: "Close Ticket", Emoji: "🔒", Style: requests.ButtonDanger}
}

func buyButton(k *storeconfig_parser.TicketKind) requests.Button {
	return requests.Button{CustomID: OpenButtonID(k.Kind), Label: "Buy", Emoji: k.Emoji, Style: requests.ButtonPrimary}
}

func productLine(p *storeconfig_parser.Product) string {
	return fmt.Sprintf("✅ %s **%s** - %s (%s)", p.Emoji, p.Name, p.Price, p.Status)
}

// Order is the catalog with the purchase button.
func (r *Renderer) Order() requests.Message {
	cnf := r.store.Get()
	kind, _ := cnf.Kind(ticket.Purchase)

	title := kind.AdvertTitle
	if title == "" {
		title = "📦" + cnf.Brand
	}

	var products []string
	for _, p := range cnf.Products {
		products = append(products, productLine(p))
	}
	if len(products) == 0 {
		products = append(products, "No products yet, check back soon!")
	}

	fields := []requests.Field{
		{Name: "All Our Products:", Value: strings.Join(products, "\n")},
	}
	if cnf.PaymentMethods != "" {
		fields = append(fields, requests.Field{Name: "Payment Methods:", Value: cnf.PaymentMethods})
	}
	if cnf.ThankYou != "" {
		fields = append(fields, requests.Field{Name: blankField, Value: cnf.ThankYou})
	}

	return requests.Message{
		Embed: &requests.Embed{
			Title:       title,
			Description: cnf.Description,
			Color:       kind.AdvertColorValue,
			Fields:      fields,
			Footer:      cnf.SupportMessage,
		},
		Buttons: []requests.Button{buyButton(kind)},
	}
}

// ThumbnailAdvert is the thumbnail offer with its button.
func (r *Renderer) ThumbnailAdvert() requests.Message {
	kind, _ := r.store.Get().Kind(ticket.Thumbnail)

	return requests.Message{
		Embed: &requests.Embed{
			Title: kind.AdvertTitle,
			Color: kind.AdvertColorValue,
		},
		Buttons: []requests.Button{buyButton(kind)},
	}
}

func (r *Renderer) FAQ() requests.Message {
	cnf := r.store.Get()

	description := cnf.FAQ.Description
	if description == "" {
		description = fmt.Sprintf("Here are answers to some common questions about %s!", cnf.Brand)
	}

	embed := &requests.Embed{
		Title:       cnf.FAQ.Title,
		Description: description,
		Color:       COLOR_FAQ,
		Footer:      cnf.FAQ.Footer,
	}
	for _, item := range cnf.FAQ.Items {
		embed.Fields = append(embed.Fields, requests.Field{Name: item.Question, Value: item.Answer})
	}

	return requests.Message{Embed: embed}
}

// Terms renders the fixed legal text.
func (r *Renderer) Terms() requests.Message {
	cnf := r.store.Get()
	if cnf.Terms == nil {
		return requests.Message{Content: "📜 Terms of Service are not configured yet."}
	}
	terms := cnf.Terms

	title := terms.Title
	if title == "" {
		title = fmt.Sprintf("📜 %s — Terms of Service", cnf.Brand)
	}

	var description []string
	if terms.EffectiveDate != "" {
		description = append(description, fmt.Sprintf("**Effective Date: %s**", terms.EffectiveDate))
	}
	if terms.Intro != "" {
		description = append(description, terms.Intro)
	}

	embed := &requests.Embed{
		Title:       title,
		Description: strings.Join(description, "\n\n"),
		Color:       COLOR_TERMS,
		Footer:      terms.Footer,
	}
	for _, section := range terms.Sections {
		embed.Fields = append(embed.Fields, requests.Field{Name: section.Name, Value: section.Text})
	}

	return requests.Message{Embed: embed}
}

// TicketWelcome is the first message in a new ticket channel.
func (r *Renderer) TicketWelcome(kind ticket.Kind, user ticket.Requester, roleID string) requests.Message {
	cnf := r.store.Get()
	k, _ := cnf.Kind(kind)

	embed := &requests.Embed{
		Title:       k.Title,
		Description: strings.ReplaceAll(k.Description, "{user}", UserMention(user.ID)),
		Color:       k.ColorValue,
		Footer:      k.Footer,
	}

	if k.ListProducts {
		for _, p := range cnf.Products {
			embed.Fields = append(embed.Fields, requests.Field{
				Name:  strings.TrimSpace(p.Emoji + " " + p.Name),
				Value: fmt.Sprintf("Price: %s\nStatus: %s", p.Price, p.Status),
			})
		}
		if cnf.PaymentMethods != "" {
			embed.Fields = append(embed.Fields, requests.Field{Name: "Payment Methods", Value: cnf.PaymentMethods})
		}
	}

	return requests.Message{
		Content:  UserMention(user.ID) + " " + RoleMention(roleID),
		Mentions: requests.Mentions{Users: []string{user.ID}, Roles: []string{roleID}},
		Embed:    embed,
		Buttons:  []requests.Button{CloseButton()},
	}
}

func (r *Renderer) WelcomeToggle(enabled bool) requests.Message {
	status, color := "disabled", COLOR_DISABLED
	if enabled {
		status, color = "enabled", COLOR_ENABLED
	}

	embed := &requests.Embed{
		Title:       "🙋‍♂️ Welcome System",
		Description: fmt.Sprintf("Welcome system has been **%s**!", status),
		Color:       color,
	}
	if enabled {
		w := r.store.Get().Welcome
		embed.Fields = []requests.Field{
			{Name: "Configuration", Value: fmt.Sprintf("**Welcome Channel:** %s\n**Auto Role:** %s", w.Channel, w.MemberRole)},
			{Name: "Note", Value: "Make sure the channel and role exist in your server!"},
		}
	}

	return requests.Message{Embed: embed}
}

// MemberGreeting is posted to the welcome channel when someone joins.
func (r *Renderer) MemberGreeting(userID string) requests.Message {
	cnf := r.store.Get()
	text := strings.NewReplacer("{brand}", cnf.Brand, "{user}", UserMention(userID)).Replace(cnf.Welcome.Greeting)

	return requests.Message{
		Content:  text,
		Mentions: requests.Mentions{Users: []string{userID}},
	}
}

func Hello(name string) requests.Message {
	return requests.Message{Content: fmt.Sprintf("Hey %s!", name)}
}

func Pong(latency time.Duration) requests.Message {
	return requests.Message{Content: fmt.Sprintf("Pong! %dms", latency.Milliseconds())}
}

func TicketCount(open int) requests.Message {
	return requests.Message{Content: fmt.Sprintf("🎫 Open tickets: %d", open)}
}

func Text(text string) requests.Message {
	return requests.Message{Content: text}
}
