package linegather

import (
	"context"
	"sync"
	"sync/atomic"
)

// Queue - fixed capacity FIFO shared by many producers and consumers.
//
// Push blocks while the queue is full, which is what bounds memory when
// producers outpace the consumer. Pop blocks while the queue is empty and
// not yet closed.
type Queue[T any] struct {
	ch     chan T
	peak   atomic.Int64
	closed sync.Once
}

// NewQueue - queue holding at most capacity items.
func NewQueue[T any](capacity int) (*Queue[T], error) {
	if capacity < 1 {
		return nil, newInvalidPoolSizeError(capacity)
	}
	return &Queue[T]{ch: make(chan T, capacity)}, nil
}

// Push - adds v, waiting for room. Returns ctx.Err() if ctx ends first.
// Must not be called after Close.
func (q *Queue[T]) Push(ctx context.Context, v T) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case q.ch <- v:
	}
	q.observe(int64(len(q.ch)))
	return nil
}

func (q *Queue[T]) observe(n int64) {
	for {
		p := q.peak.Load()
		if n <= p || q.peak.CompareAndSwap(p, n) {
			return
		}
	}
}

// Pop - removes the oldest item, waiting until one is available.
// ok is false once the queue is closed and drained, or when ctx ends.
func (q *Queue[T]) Pop(ctx context.Context) (v T, ok bool) {
	select {
	case <-ctx.Done():
		return v, false
	case v, ok = <-q.ch:
		return v, ok
	}
}

// Close - signals that no more items will be pushed.
// Items already queued can still be popped.
func (q *Queue[T]) Close() {
	q.closed.Do(func() { close(q.ch) })
}

// Len - current occupancy.
func (q *Queue[T]) Len() int {
	return len(q.ch)
}

// Cap - capacity.
func (q *Queue[T]) Cap() int {
	return cap(q.ch)
}

// IsEmpty - non-blocking occupancy check.
func (q *Queue[T]) IsEmpty() bool {
	return len(q.ch) == 0
}

// Peak - highest occupancy observed right after a push.
func (q *Queue[T]) Peak() int {
	return int(q.peak.Load())
}
