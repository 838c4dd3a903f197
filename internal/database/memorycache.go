package database

import (
	"errors"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
)

// сколько помним обработанные события
const EVENT_TTL = 10 * time.Minute

func ConnectInMemoryCache(ttl time.Duration) (*bigcache.BigCache, error) {
	cnf := bigcache.DefaultConfig(ttl)
	// событий мало, ключи короткие: не держим сотни мегабайт под шарды
	cnf.Shards = 16
	cnf.MaxEntriesInWindow = 10000
	cnf.MaxEntrySize = 64
	cnf.CleanWindow = time.Minute

	return bigcache.NewBigCache(cnf)
}

// EventLog remembers processed gateway events so that a replay after a
// session resume is not handled twice.
type EventLog struct {
	mu    sync.Mutex
	cache *bigcache.BigCache
}

func NewEventLog(cache *bigcache.BigCache) *EventLog {
	return &EventLog{cache: cache}
}

// Seen records id and reports whether it was already recorded.
func (l *EventLog) Seen(id string) bool {
	if id == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.cache.Get(id)
	if err == nil {
		return true
	}
	if !errors.Is(err, bigcache.ErrEntryNotFound) {
		// кеш недоступен: лучше обработать повтор, чем потерять событие
		return false
	}

	_ = l.cache.Set(id, []byte{1})
	return false
}

func (l *EventLog) Close() error {
	return l.cache.Close()
}
