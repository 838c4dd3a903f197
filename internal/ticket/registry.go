package ticket

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	ticket    ActiveTicket
	committed bool
}

// Registry maps users to their single open ticket. A slot is first reserved,
// then committed once the channel exists. All methods are safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	byUser    map[string]*entry
	byChannel map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		byUser:    make(map[string]*entry),
		byChannel: make(map[string]string),
	}
}

// TryReserve reserves the slot for userID. It returns false without
// changes if the user already holds a reservation or a ticket.
func (r *Registry) TryReserve(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exist := r.byUser[userID]; exist {
		return false
	}
	r.byUser[userID] = &entry{ticket: ActiveTicket{ID: uuid.New(), UserID: userID}}
	return true
}

// Commit turns a held reservation into an ActiveTicket.
func (r *Registry) Commit(userID, channelID string, kind Kind) (ActiveTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, exist := r.byUser[userID]
	if !exist || e.committed {
		return ActiveTicket{}, errNotReserved
	}
	if _, used := r.byChannel[channelID]; used {
		return ActiveTicket{}, errChannelInUse
	}

	e.ticket.ChannelID = channelID
	e.ticket.Kind = kind
	e.ticket.OpenedAt = time.Now()
	e.committed = true
	r.byChannel[channelID] = userID

	return e.ticket, nil
}

// Abort drops a reservation that never got a channel. Committed tickets are left alone.
func (r *Registry) Abort(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, exist := r.byUser[userID]; exist && !e.committed {
		delete(r.byUser, userID)
	}
}

func (r *Registry) FindByChannel(channelID string) (ActiveTicket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, exist := r.byChannel[channelID]
	if !exist {
		return ActiveTicket{}, false
	}
	return r.byUser[userID].ticket, true
}

// Remove deletes the user's entry. Removing an absent user is a no-op.
func (r *Registry) Remove(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, exist := r.byUser[userID]
	if !exist {
		return
	}
	if e.committed {
		delete(r.byChannel, e.ticket.ChannelID)
	}
	delete(r.byUser, userID)
}

// Len counts committed tickets.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byChannel)
}

// Snapshot copies the committed tickets.
func (r *Registry) Snapshot() []ActiveTicket {
	r.mu.Lock()
	defer r.mu.Unlock()

	tickets := make([]ActiveTicket, 0, len(r.byChannel))
	for _, userID := range r.byChannel {
		tickets = append(tickets, r.byUser[userID].ticket)
	}
	return tickets
}

// Holds reports whether the user has a reservation or a ticket.
func (r *Registry) Holds(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exist := r.byUser[userID]
	return exist
}
