package storeconfig_parser

import (
	"os"
	"path/filepath"
	"testing"

	"store-ticket-bot/internal/ticket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalStore = `
brand: Blox Templates
payment_methods: USD, Robux
products:
  - emoji: "🔍"
    name: Find The Template
    price: "$25.00"
    status: Available
faq:
  items:
    - question: "💳 What payment methods do you accept?"
      answer: We accept USD and Robux payments.
`

func TestParse_FillsDefaults(t *testing.T) {
	cnf, err := Parse([]byte(minimalStore))
	require.NoError(t, err)

	require.Len(t, cnf.Products, 1)
	assert.Equal(t, StatusAvailable, cnf.Products[0].Status)
	assert.Equal(t, "$25.00", cnf.Products[0].Price)

	purchase, ok := cnf.Kind(ticket.Purchase)
	require.True(t, ok)
	assert.Equal(t, "[💸] PURCHASE", purchase.Category)
	assert.Equal(t, "Founder👑", purchase.Role)
	assert.Equal(t, "purchase-", purchase.Prefix)
	assert.Equal(t, 0x00FF00, purchase.ColorValue)
	assert.True(t, purchase.ListProducts)
	assert.Equal(t, ticket.Purchase, purchase.Kind)

	thumb, ok := cnf.Kind(ticket.Thumbnail)
	require.True(t, ok)
	assert.Equal(t, "[🎨] THUMBNAILS", thumb.Category)
	assert.Equal(t, 0xFF6B9D, thumb.ColorValue)

	assert.Equal(t, "Member", cnf.Welcome.MemberRole)
	assert.Equal(t, "❓ Frequently Asked Questions", cnf.FAQ.Title)
	assert.Nil(t, cnf.Terms)

	assert.Equal(t, []ticket.Descriptor{
		{Kind: ticket.Purchase, Category: "[💸] PURCHASE", Role: "Founder👑", Prefix: "purchase-"},
		{Kind: ticket.Thumbnail, Category: "[🎨] THUMBNAILS", Role: "Founder👑", Prefix: "thumbnail-"},
	}, cnf.Descriptors())
}

func TestParse_OverridesKind(t *testing.T) {
	cnf, err := Parse([]byte(`
brand: Shop
tickets:
  thumbnail:
    category: "Art"
    role: "Artist"
    color: "0x112233"
`))
	require.NoError(t, err)

	thumb, _ := cnf.Kind(ticket.Thumbnail)
	assert.Equal(t, "Art", thumb.Category)
	assert.Equal(t, "Artist", thumb.Role)
	assert.Equal(t, 0x112233, thumb.ColorValue)
	assert.Equal(t, "thumbnail-", thumb.Prefix)
}

func TestParse_FillsPartialSections(t *testing.T) {
	cnf, err := Parse([]byte(`
brand: Shop
faq:
  description: Questions about Shop
welcome:
  channel: lobby
`))
	require.NoError(t, err)

	assert.Equal(t, "❓ Frequently Asked Questions", cnf.FAQ.Title)
	assert.Equal(t, "Questions about Shop", cnf.FAQ.Description)
	assert.Equal(t, "Still have questions? Open a ticket and we'll be happy to help!", cnf.FAQ.Footer)

	assert.Equal(t, "lobby", cnf.Welcome.Channel)
	assert.Equal(t, "Member", cnf.Welcome.MemberRole)
	assert.Equal(t, "Welcome to {brand} {user}! 🎉", cnf.Welcome.Greeting)
}

func TestParse_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no brand", "payment_methods: USD\n"},
		{"product without price", "brand: S\nproducts:\n  - name: X\n"},
		{"product without name", "brand: S\nproducts:\n  - price: \"$1\"\n"},
		{"unknown status", "brand: S\nproducts:\n  - name: X\n    price: \"$1\"\n    status: Sold\n"},
		{"faq without answer", "brand: S\nfaq:\n  items:\n    - question: Q\n"},
		{"terms section without text", "brand: S\nterms:\n  sections:\n    - name: N\n"},
		{"unknown ticket kind", "brand: S\ntickets:\n  refund:\n    role: R\n"},
		{"prefix without dash", "brand: S\ntickets:\n  purchase:\n    prefix: buy\n"},
		{"overlapping prefixes", "brand: S\ntickets:\n  purchase:\n    prefix: ticket-\n  thumbnail:\n    prefix: ticket-\n"},
		{"bad color", "brand: S\ntickets:\n  purchase:\n    color: green\n"},
		{"unknown field", "brand: S\nprice_list: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestStore_Update(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.yml")
	require.NoError(t, os.WriteFile(path, []byte(minimalStore), 0o644))

	store, err := LoadStore(path)
	require.NoError(t, err)
	before := store.Get()
	assert.Equal(t, "Blox Templates", before.Brand)

	require.NoError(t, os.WriteFile(path, []byte("brand: Game Templates\n"), 0o644))
	require.NoError(t, store.Update())
	assert.Equal(t, "Game Templates", store.Get().Brand)
	assert.Equal(t, "Blox Templates", before.Brand, "old snapshot is untouched")

	require.NoError(t, os.WriteFile(path, []byte("brand: [broken\n"), 0o644))
	assert.Error(t, store.Update())
	assert.Equal(t, "Game Templates", store.Get().Brand, "invalid file keeps previous config")
}

func TestParseColor(t *testing.T) {
	for in, want := range map[string]int{"#5865F2": 0x5865F2, "0xff0000": 0xFF0000, "00ff00": 0x00FF00} {
		got, err := parseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parseColor("#fff")
	assert.Error(t, err)
}
