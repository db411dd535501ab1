package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietddude/loresmith/internal/core/domain"
	redisclient "github.com/vietddude/loresmith/internal/infra/redis"
)

func newTestQueue(t *testing.T) (*redisclient.Queue, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return redisclient.NewQueueWithClient(client, "test:events"), mr
}

func TestQueueScheduleAndPop(t *testing.T) {
	queue, _ := newTestQueue(t)
	ctx := context.Background()

	event := domain.NewCompositionEvent([]int{2, 1})
	require.NoError(t, queue.Schedule(ctx, event, 0))

	got, found, err := queue.PopDue(ctx, time.Now())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, event.Composition, got.Composition)
	assert.Equal(t, 0, got.Attempts())
	assert.True(t, got.Created().Equal(event.Created()))

	// queue is drained
	_, found, err = queue.PopDue(ctx, time.Now())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestQueueDelayedEventNotDueYet(t *testing.T) {
	queue, _ := newTestQueue(t)
	ctx := context.Background()

	event := domain.NewCompositionEvent([]int{1})
	require.NoError(t, queue.Schedule(ctx, event, time.Hour))

	_, found, err := queue.PopDue(ctx, time.Now())
	require.NoError(t, err)
	assert.False(t, found, "event must stay queued until its delay passes")

	_, found, err = queue.PopDue(ctx, time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, found)
}

func TestQueueIdenticalEventsDoNotCollapse(t *testing.T) {
	queue, _ := newTestQueue(t)
	ctx := context.Background()

	event := domain.NewCompositionEvent([]int{1})
	require.NoError(t, queue.Schedule(ctx, event, 0))
	require.NoError(t, queue.Schedule(ctx, event, 0))

	depth, err := queue.Depth(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), depth)
}

func TestQueuePopOrdersByDueTime(t *testing.T) {
	queue, _ := newTestQueue(t)
	ctx := context.Background()

	late := domain.NewCompositionEvent([]int{9})
	early := domain.NewCompositionEvent([]int{1})
	require.NoError(t, queue.Schedule(ctx, late, 30*time.Minute))
	require.NoError(t, queue.Schedule(ctx, early, time.Minute))

	got, found, err := queue.PopDue(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, early.Composition, got.Composition)
}

func TestQueueDeadLetter(t *testing.T) {
	queue, mr := newTestQueue(t)
	ctx := context.Background()

	event := domain.NewCompositionEvent([]int{1}).NextAttempt()
	require.NoError(t, queue.DeadLetter(ctx, event, errors.New("retry budget exhausted")))

	entries, err := mr.List("test:events:dead")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0], "retry budget exhausted")
	assert.Contains(t, entries[0], `"retry":1`)
}
