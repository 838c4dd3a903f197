package ticket

import (
	"sync"
	"time"

	"store-ticket-bot/internal/goroutine"
	"store-ticket-bot/internal/logger"

	"github.com/google/uuid"
)

// Scheduler runs deferred channel deletions. Tasks live only in memory:
// deletions still pending when the process stops are lost.
type Scheduler struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*Task
}

// Task is a handle to one scheduled deletion.
type Task struct {
	ID        uuid.UUID
	ChannelID string
	RunAt     time.Time

	s     *Scheduler
	timer *time.Timer
	done  chan struct{}
	once  sync.Once
}

func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[uuid.UUID]*Task)}
}

// After runs fn once d has elapsed, on its own goroutine.
func (s *Scheduler) After(d time.Duration, channelID string, fn func()) *Task {
	t := &Task{
		ID:        uuid.New(),
		ChannelID: channelID,
		RunAt:     time.Now().Add(d),
		s:         s,
		done:      make(chan struct{}),
	}

	s.mu.Lock()
	s.tasks[t.ID] = t
	// таймер создаем под локом, чтобы Cancel не увидел task без таймера
	t.timer = time.AfterFunc(d, goroutine.Guard("delete channel "+channelID, func() {
		defer t.finish()
		fn()
	}))
	s.mu.Unlock()

	return t
}

// Cancel stops the task if it hasn't started. It reports whether it did.
func (t *Task) Cancel() bool {
	t.s.mu.Lock()
	stopped := t.timer.Stop()
	t.s.mu.Unlock()

	if stopped {
		t.finish()
	}
	return stopped
}

// Done is closed once the task has run or was cancelled.
func (t *Task) Done() <-chan struct{} { return t.done }

func (t *Task) finish() {
	t.once.Do(func() {
		t.s.mu.Lock()
		delete(t.s.tasks, t.ID)
		t.s.mu.Unlock()
		close(t.done)
	})
}

func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Shutdown cancels every pending task and logs the channels left behind.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	tasks := make([]*Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	s.mu.Unlock()

	for _, t := range tasks {
		if t.Cancel() {
			logger.Warning("Shutdown before deletion, channel", t.ChannelID, "stays in the guild")
		}
	}
}
