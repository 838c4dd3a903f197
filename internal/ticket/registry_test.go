package ticket

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ReserveCommitRemove(t *testing.T) {
	r := NewRegistry()

	require.True(t, r.TryReserve("a"))
	assert.False(t, r.TryReserve("a"), "second reservation must fail")
	assert.Equal(t, 0, r.Len(), "reservations are not counted as tickets")

	_, found := r.FindByChannel("chan-1")
	assert.False(t, found, "reservation has no channel yet")

	ticket, err := r.Commit("a", "chan-1", Purchase)
	require.NoError(t, err)
	assert.Equal(t, "a", ticket.UserID)
	assert.Equal(t, "chan-1", ticket.ChannelID)
	assert.Equal(t, Purchase, ticket.Kind)
	assert.False(t, ticket.OpenedAt.IsZero())

	got, found := r.FindByChannel("chan-1")
	require.True(t, found)
	assert.Equal(t, ticket, got)
	assert.False(t, r.TryReserve("a"), "committed ticket blocks any kind")

	r.Remove("a")
	assert.False(t, r.Holds("a"))
	_, found = r.FindByChannel("chan-1")
	assert.False(t, found)
	assert.True(t, r.TryReserve("a"))
}

func TestRegistry_RemoveAbsentIsNoop(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.TryReserve("b"))
	_, err := r.Commit("b", "chan-b", Thumbnail)
	require.NoError(t, err)

	r.Remove("nobody")

	assert.Equal(t, 1, r.Len())
	assert.True(t, r.Holds("b"))
}

func TestRegistry_Abort(t *testing.T) {
	r := NewRegistry()

	t.Run("releases reservation", func(t *testing.T) {
		require.True(t, r.TryReserve("a"))
		r.Abort("a")
		assert.False(t, r.Holds("a"))
	})

	t.Run("keeps committed ticket", func(t *testing.T) {
		require.True(t, r.TryReserve("c"))
		_, err := r.Commit("c", "chan-c", Purchase)
		require.NoError(t, err)

		r.Abort("c")

		_, found := r.FindByChannel("chan-c")
		assert.True(t, found)
	})

	t.Run("absent user", func(t *testing.T) {
		assert.NotPanics(t, func() { r.Abort("ghost") })
	})
}

func TestRegistry_CommitRules(t *testing.T) {
	r := NewRegistry()

	_, err := r.Commit("x", "chan-x", Purchase)
	assert.ErrorIs(t, err, errNotReserved)

	require.True(t, r.TryReserve("x"))
	_, err = r.Commit("x", "chan-x", Purchase)
	require.NoError(t, err)

	_, err = r.Commit("x", "chan-x2", Purchase)
	assert.ErrorIs(t, err, errNotReserved, "already committed")

	require.True(t, r.TryReserve("y"))
	_, err = r.Commit("y", "chan-x", Thumbnail)
	assert.ErrorIs(t, err, errChannelInUse)
	assert.True(t, r.Holds("y"), "failed commit keeps the reservation for abort")
}

func TestRegistry_ConcurrentReserveSameUser(t *testing.T) {
	r := NewRegistry()

	var (
		wg  sync.WaitGroup
		won atomic.Int32
	)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.TryReserve("racer") {
				won.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), won.Load())
}

func TestRegistry_Snapshot(t *testing.T) {
	r := NewRegistry()
	for _, u := range []string{"a", "b", "c"} {
		require.True(t, r.TryReserve(u))
	}
	_, err := r.Commit("a", "chan-a", Purchase)
	require.NoError(t, err)
	_, err = r.Commit("b", "chan-b", Thumbnail)
	require.NoError(t, err)

	snap := r.Snapshot()

	assert.Len(t, snap, 2)
	users := []string{snap[0].UserID, snap[1].UserID}
	assert.ElementsMatch(t, []string{"a", "b"}, users)
}
