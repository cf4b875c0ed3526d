package linegather_test

import (
	"context"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/jaredmtdev/linegather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	ctx := context.Background()
	q, err := linegather.NewQueue[int](4)
	require.NoError(t, err)
	assert.True(t, q.IsEmpty())
	assert.Equal(t, 4, q.Cap())

	for i := range 4 {
		require.NoError(t, q.Push(ctx, i))
	}
	assert.Equal(t, 4, q.Len())
	assert.False(t, q.IsEmpty())
	q.Close()

	var got []int
	for {
		v, ok := q.Pop(ctx)
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, got)
	assert.Equal(t, 4, q.Peak())
}

func TestQueueInvalidCapacity(t *testing.T) {
	_, err := linegather.NewQueue[int](0)
	require.ErrorIs(t, err, linegather.ErrInvalidPoolSize)
}

func TestQueuePushBlocksWhenFull(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx := context.Background()
		q, err := linegather.NewQueue[int](2)
		require.NoError(t, err)
		require.NoError(t, q.Push(ctx, 1))
		require.NoError(t, q.Push(ctx, 2))

		pushed := make(chan struct{})
		go func() {
			defer close(pushed)
			assert.NoError(t, q.Push(ctx, 3))
		}()
		synctest.Wait()
		select {
		case <-pushed:
			t.Fatal("push did not block on a full queue")
		default:
		}
		assert.Equal(t, 2, q.Len())

		v, ok := q.Pop(ctx)
		require.True(t, ok)
		assert.Equal(t, 1, v)
		synctest.Wait()
		<-pushed
		assert.Equal(t, 2, q.Len())
		assert.Equal(t, 2, q.Peak())
	})
}

func TestQueuePushCancel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		q, err := linegather.NewQueue[int](1)
		require.NoError(t, err)
		require.NoError(t, q.Push(ctx, 1))

		errCh := make(chan error, 1)
		go func() { errCh <- q.Push(ctx, 2) }()
		synctest.Wait()
		cancel()
		require.ErrorIs(t, <-errCh, context.Canceled)
		assert.Equal(t, 1, q.Len())
	})
}

func TestQueuePopBlocksUntilPushOrClose(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx := context.Background()
		q, err := linegather.NewQueue[string](1)
		require.NoError(t, err)

		got := make(chan string, 2)
		go func() {
			for {
				v, ok := q.Pop(ctx)
				if !ok {
					close(got)
					return
				}
				got <- v
			}
		}()
		synctest.Wait()
		assert.Empty(t, got)

		require.NoError(t, q.Push(ctx, "a"))
		synctest.Wait()
		assert.Equal(t, "a", <-got)

		q.Close()
		synctest.Wait()
		_, open := <-got
		assert.False(t, open)
	})
}

func TestQueuePopCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	q, err := linegather.NewQueue[int](1)
	require.NoError(t, err)
	_, ok := q.Pop(ctx)
	assert.False(t, ok)
}

func TestQueueNeverExceedsCapacity(t *testing.T) {
	ctx := context.Background()
	const capacity = 3
	q, err := linegather.NewQueue[int](capacity)
	require.NoError(t, err)

	wg := sync.WaitGroup{}
	for p := range 8 {
		wg.Go(func() {
			for i := range 100 {
				assert.NoError(t, q.Push(ctx, p*100+i))
			}
		})
	}
	go func() {
		wg.Wait()
		q.Close()
	}()

	var n int
	for {
		if _, ok := q.Pop(ctx); !ok {
			break
		}
		assert.LessOrEqual(t, q.Len(), capacity)
		n++
	}
	assert.Equal(t, 800, n)
	assert.LessOrEqual(t, q.Peak(), capacity)
	q.Close()
}
