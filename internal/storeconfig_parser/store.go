package storeconfig_parser

import (
	"store-ticket-bot/internal/ticket"
)

type StoreConfig struct {
	Brand          string `yaml:"brand"`
	Description    string `yaml:"description"`
	SupportMessage string `yaml:"support_message"`
	PaymentMethods string `yaml:"payment_methods"`
	// текст под списком товаров в !order
	ThankYou string `yaml:"thank_you"`

	Products []*Product `yaml:"products"`
	FAQ      *FAQ       `yaml:"faq"`
	Terms    *Terms     `yaml:"terms"`

	// виды тикетов: purchase, thumbnail
	Tickets map[string]*TicketKind `yaml:"tickets"`

	Welcome *Welcome `yaml:"welcome"`
}

type ProductStatus string

const (
	StatusAvailable   ProductStatus = "Available"
	StatusUnavailable ProductStatus = "Unavailable"
	StatusComingSoon  ProductStatus = "Coming Soon"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusUnavailable, StatusComingSoon:
		return true
	}
	return false
}

type Product struct {
	Emoji  string        `yaml:"emoji"`
	Name   string        `yaml:"name"`
	Price  string        `yaml:"price"`
	Status ProductStatus `yaml:"status"`
}

type FAQ struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Footer      string     `yaml:"footer"`
	Items       []*FAQItem `yaml:"items"`
}

type FAQItem struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

type Terms struct {
	Title         string          `yaml:"title"`
	EffectiveDate string          `yaml:"effective_date"`
	Intro         string          `yaml:"intro"`
	Sections      []*TermsSection `yaml:"sections"`
	Footer        string          `yaml:"footer"`
}

type TermsSection struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

type TicketKind struct {
	Category string `yaml:"category"`
	Role     string `yaml:"role"`
	Prefix   string `yaml:"prefix"`

	// заголовок рекламного сообщения с кнопкой
	AdvertTitle string `yaml:"advert_title"`
	AdvertColor string `yaml:"advert_color"`
	// эмодзи на кнопке покупки
	Emoji string `yaml:"emoji"`

	// приветствие в канале тикета, {user} заменяется упоминанием
	Title        string `yaml:"title"`
	Color        string `yaml:"color"`
	Description  string `yaml:"description"`
	Footer       string `yaml:"footer"`
	ListProducts bool   `yaml:"list_products"`

	Kind             ticket.Kind `yaml:"-"`
	ColorValue       int         `yaml:"-"`
	AdvertColorValue int         `yaml:"-"`
}

type Welcome struct {
	Channel    string `yaml:"channel"`
	MemberRole string `yaml:"member_role"`
	// {brand} и {user} заменяются при отправке
	Greeting string `yaml:"greeting"`
}

// Kind returns the settings of a ticket kind.
func (s *StoreConfig) Kind(kind ticket.Kind) (*TicketKind, bool) {
	k, ok := s.Tickets[kind.String()]
	return k, ok
}

// Descriptors returns the lifecycle part of every ticket kind.
func (s *StoreConfig) Descriptors() []ticket.Descriptor {
	var result []ticket.Descriptor
	for _, kind := range ticket.Kinds() {
		k, ok := s.Kind(kind)
		if !ok {
			continue
		}
		result = append(result, ticket.Descriptor{
			Kind:     kind,
			Category: k.Category,
			Role:     k.Role,
			Prefix:   k.Prefix,
		})
	}
	return result
}
