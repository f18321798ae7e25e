package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryNotifier_RevisionsMoveOnNotify(t *testing.T) {
	ctx := context.Background()
	n := NewMemoryNotifier()

	revs, err := n.Revisions(ctx, []string{"groups", "tasks"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"groups": 0, "tasks": 0}, revs)

	require.NoError(t, n.Notify(ctx, "groups"))
	require.NoError(t, n.Notify(ctx, "groups"))

	revs, err = n.Revisions(ctx, []string{"groups", "tasks"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, revs["groups"])
	assert.EqualValues(t, 0, revs["tasks"])
}

func TestMemoryNotifier_ConcurrentNotify(t *testing.T) {
	ctx := context.Background()
	n := NewMemoryNotifier()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = n.Notify(ctx, "tasks")
		}()
	}
	wg.Wait()

	revs, err := n.Revisions(ctx, []string{"tasks"})
	require.NoError(t, err)
	assert.EqualValues(t, 50, revs["tasks"])
}

func TestMemoryLocker_ExclusiveUntilExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	l := NewMemoryLocker()
	l.now = func() time.Time { return now }

	ok, err := l.Acquire(ctx, "sweep", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Acquire(ctx, "sweep", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	ok, err = l.Acquire(ctx, "sweep", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryLocker_Release(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLocker()

	ok, _ := l.Acquire(ctx, "sweep", time.Hour)
	require.True(t, ok)
	require.NoError(t, l.Release(ctx, "sweep"))

	ok, _ = l.Acquire(ctx, "sweep", time.Hour)
	assert.True(t, ok)
}
