package storeconfig_parser

import "store-ticket-bot/internal/ticket"

func defaultFAQ() *FAQ {
	return &FAQ{
		Title:  "❓ Frequently Asked Questions",
		Footer: "Still have questions? Open a ticket and we'll be happy to help!",
	}
}

func defaultWelcome() *Welcome {
	return &Welcome{
		Channel:    "🙋‍♂️welcome",
		MemberRole: "Member",
		Greeting:   "Welcome to {brand} {user}! 🎉",
	}
}

func defaultTicketKinds() map[string]*TicketKind {
	return map[string]*TicketKind{
		ticket.Purchase.String(): {
			Category:     "[💸] PURCHASE",
			Role:         "Founder👑",
			Prefix:       "purchase-",
			AdvertColor:  "#5865F2",
			Emoji:        "💎",
			Title:        "🎫 Purchase Ticket",
			Color:        "#00FF00",
			Description:  "Welcome {user}! A staff member will assist you shortly.\n\n**Available Products:**",
			Footer:       "Please tell us which template you'd like to purchase!",
			ListProducts: true,
		},
		ticket.Thumbnail.String(): {
			Category:    "[🎨] THUMBNAILS",
			Role:        "Founder👑",
			Prefix:      "thumbnail-",
			AdvertTitle: "🎨 Order Thumbnails for your game!",
			AdvertColor: "#FF6B9D",
			Emoji:       "🎨",
			Title:       "🎨 Thumbnail Ticket",
			Color:       "#FF6B9D",
			Description: "Welcome {user}! A staff member will assist you shortly with your thumbnail order.",
			Footer:      "Please describe what kind of thumbnail you'd like!",
		},
	}
}

// заполнить незаданные поля вида тикета значениями по умолчанию
func (k *TicketKind) setDefault(d *TicketKind) {
	if k.Category == "" {
		k.Category = d.Category
	}
	if k.Role == "" {
		k.Role = d.Role
	}
	if k.Prefix == "" {
		k.Prefix = d.Prefix
	}
	if k.AdvertTitle == "" {
		k.AdvertTitle = d.AdvertTitle
	}
	if k.AdvertColor == "" {
		k.AdvertColor = d.AdvertColor
	}
	if k.Emoji == "" {
		k.Emoji = d.Emoji
	}
	if k.Title == "" {
		k.Title = d.Title
	}
	if k.Color == "" {
		k.Color = d.Color
	}
	if k.Description == "" {
		k.Description = d.Description
	}
	if k.Footer == "" {
		k.Footer = d.Footer
	}
}

func (f *FAQ) setDefault(d *FAQ) {
	if f.Title == "" {
		f.Title = d.Title
	}
	if f.Footer == "" {
		f.Footer = d.Footer
	}
}

func (w *Welcome) setDefault(d *Welcome) {
	if w.Channel == "" {
		w.Channel = d.Channel
	}
	if w.MemberRole == "" {
		w.MemberRole = d.MemberRole
	}
	if w.Greeting == "" {
		w.Greeting = d.Greeting
	}
}
