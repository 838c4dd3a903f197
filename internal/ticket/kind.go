package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Kind int

const (
	Purchase Kind = iota + 1
	Thumbnail
)

var kindNames = map[Kind]string{
	Purchase:  "purchase",
	Thumbnail: "thumbnail",
}

// Kinds returns every known ticket kind in display order.
func Kinds() []Kind { return []Kind{Purchase, Thumbnail} }

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown ticket kind: %q", s)
}

type (
	// Descriptor is the immutable configuration of one ticket kind.
	Descriptor struct {
		Kind     Kind
		Category string
		Role     string
		Prefix   string
	}

	// Requester is the user asking for a ticket.
	Requester struct {
		ID   string
		Name string
	}

	ActiveTicket struct {
		ID        uuid.UUID
		UserID    string
		ChannelID string
		Kind      Kind
		OpenedAt  time.Time
	}
)

// ChannelName builds the ticket channel name from the kind prefix and
// the requester's display name.
func ChannelName(prefix, displayName string) string {
	return strings.ReplaceAll(strings.ToLower(prefix+displayName), " ", "-")
}
