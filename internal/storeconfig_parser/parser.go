package storeconfig_parser

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"store-ticket-bot/internal/ticket"

	"github.com/goccy/go-yaml"
)

// Store holds the current store configuration. Update swaps it atomically.
type Store struct {
	mu   sync.RWMutex
	path string
	cnf  *StoreConfig
}

func LoadStore(path string) (*Store, error) {
	cnf, err := loadStoreConfig(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, cnf: cnf}, nil
}

// NewStore wraps an already validated configuration.
func NewStore(cnf *StoreConfig) *Store {
	return &Store{cnf: cnf}
}

func (s *Store) Path() string { return s.path }

// Get returns the current configuration. Callers must not modify it.
func (s *Store) Get() *StoreConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cnf
}

// Update re-reads the file. On error the previous configuration stays.
func (s *Store) Update() error {
	cnf, err := loadStoreConfig(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cnf = cnf
	s.mu.Unlock()
	return nil
}

func loadStoreConfig(path string) (*StoreConfig, error) {
	input, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read store config: %w", err)
	}
	return Parse(input)
}

// Parse decodes and validates a store configuration.
func Parse(input []byte) (*StoreConfig, error) {
	cnf := &StoreConfig{}
	if err := yaml.NewDecoder(bytes.NewReader(input), yaml.DisallowUnknownField()).Decode(cnf); err != nil {
		return nil, fmt.Errorf("decode store config: %w", err)
	}

	if err := cnf.check(); err != nil {
		return nil, err
	}
	return cnf, nil
}

func (s *StoreConfig) check() error {
	if s.Brand == "" {
		return fmt.Errorf("brand is empty")
	}
	if s.FAQ == nil {
		s.FAQ = &FAQ{}
	}
	s.FAQ.setDefault(defaultFAQ())
	if s.Welcome == nil {
		s.Welcome = &Welcome{}
	}
	s.Welcome.setDefault(defaultWelcome())

	for i, p := range s.Products {
		if err := p.check(); err != nil {
			return fmt.Errorf("products[%d]: %w", i, err)
		}
	}

	for i, item := range s.FAQ.Items {
		if item == nil || item.Question == "" || item.Answer == "" {
			return fmt.Errorf("faq.items[%d]: question and answer are required", i)
		}
	}

	if s.Terms != nil {
		for i, section := range s.Terms.Sections {
			if section == nil || section.Name == "" || section.Text == "" {
				return fmt.Errorf("terms.sections[%d]: name and text are required", i)
			}
		}
	}

	return s.checkTickets()
}

func (p *Product) check() error {
	if p == nil {
		return fmt.Errorf("empty product")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is empty")
	}
	if strings.TrimSpace(p.Price) == "" {
		return fmt.Errorf("price is empty: %s", p.Name)
	}
	if p.Status == "" {
		p.Status = StatusAvailable
	}
	if !p.Status.Valid() {
		return fmt.Errorf("unknown status %q: %s", p.Status, p.Name)
	}
	return nil
}

func (s *StoreConfig) checkTickets() error {
	if s.Tickets == nil {
		s.Tickets = make(map[string]*TicketKind)
	}
	for name := range s.Tickets {
		if _, err := ticket.ParseKind(name); err != nil {
			return fmt.Errorf("tickets: %w", err)
		}
	}

	defaults := defaultTicketKinds()
	prefixes := make(map[string]string)

	for _, kind := range ticket.Kinds() {
		name := kind.String()
		k, exist := s.Tickets[name]
		if !exist || k == nil {
			k = &TicketKind{}
			s.Tickets[name] = k
		}
		k.setDefault(defaults[name])
		k.Kind = kind

		if !strings.HasSuffix(k.Prefix, "-") || k.Prefix != strings.ToLower(k.Prefix) || strings.Contains(k.Prefix, " ") {
			return fmt.Errorf("tickets.%s: prefix must be lowercase, without spaces and end with '-': %q", name, k.Prefix)
		}
		for other, prefix := range prefixes {
			if strings.HasPrefix(k.Prefix, prefix) || strings.HasPrefix(prefix, k.Prefix) {
				return fmt.Errorf("tickets.%s: prefix %q overlaps tickets.%s", name, k.Prefix, other)
			}
		}
		prefixes[name] = k.Prefix

		var err error
		if k.ColorValue, err = parseColor(k.Color); err != nil {
			return fmt.Errorf("tickets.%s.color: %w", name, err)
		}
		if k.AdvertColorValue, err = parseColor(k.AdvertColor); err != nil {
			return fmt.Errorf("tickets.%s.advert_color: %w", name, err)
		}
	}
	return nil
}

// parseColor accepts "#RRGGBB" and "0xRRGGBB".
func parseColor(s string) (int, error) {
	hex := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "#"), "0x")
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	return int(v), nil
}
