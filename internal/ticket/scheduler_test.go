package ticket

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunsAfterDelay(t *testing.T) {
	s := NewScheduler()
	var ran atomic.Bool

	task := s.After(20*time.Millisecond, "chan-1", func() { ran.Store(true) })
	assert.Equal(t, 1, s.Pending())

	waitTask(t, task)
	assert.True(t, ran.Load())
	assert.Zero(t, s.Pending())
	assert.False(t, task.Cancel(), "finished task can't be cancelled")
}

func TestScheduler_Cancel(t *testing.T) {
	s := NewScheduler()
	var ran atomic.Bool

	task := s.After(time.Hour, "chan-1", func() { ran.Store(true) })

	assert.True(t, task.Cancel())
	assert.False(t, task.Cancel())
	waitTask(t, task)
	assert.False(t, ran.Load())
	assert.Zero(t, s.Pending())
}

func TestScheduler_PanicIsRecovered(t *testing.T) {
	s := NewScheduler()

	task := s.After(time.Millisecond, "chan-1", func() { panic("boom") })

	waitTask(t, task)
	assert.Zero(t, s.Pending())
}

func TestScheduler_Shutdown(t *testing.T) {
	s := NewScheduler()
	var ran atomic.Int32

	tasks := []*Task{
		s.After(time.Hour, "chan-1", func() { ran.Add(1) }),
		s.After(time.Hour, "chan-2", func() { ran.Add(1) }),
	}

	s.Shutdown()

	for _, task := range tasks {
		waitTask(t, task)
	}
	assert.Zero(t, s.Pending())
	assert.Zero(t, ran.Load())
	assert.NotEqual(t, tasks[0].ID, tasks[1].ID)
}
