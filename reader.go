package linegather

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/jaredmtdev/linegather/internal/seq"
	"github.com/jaredmtdev/linegather/internal/syncvalue"
)

// Batch - consecutive processed lines from one worker.
type Batch[T any] struct {
	// Worker - index of the worker that produced the batch.
	Worker int
	// Seq - position of the batch among the worker's batches, starting at 0.
	Seq int
	// Offset - byte offset of the first line in the batch.
	Offset int64
	// Bytes - bytes consumed by the batch's lines, terminators included.
	Bytes int64
	// Samples - processed lines in file order.
	Samples []T
}

// Len - number of samples.
func (b Batch[T]) Len() int {
	return len(b.Samples)
}

// Stats - counters for one Read.
type Stats struct {
	Workers   int
	Size      int64
	Lines     int64
	Bytes     int64
	Batches   int64
	PeakQueue int
}

// Stream - lazy, single-pass sequence of batches produced by Read.
type Stream[T any] struct {
	ws     *workerStation[T]
	size   int64
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	err      syncvalue.Value[error]
	stopped  atomic.Bool
	iterated atomic.Bool

	mu     sync.Mutex
	ranges []FileRange
}

// Read starts `workers` goroutines that each scan one range of the file at
// path, apply process to every line, and push batches of results into a
// bounded queue. It returns a Stream to consume them.
//
// Concurrency and resource use:
//   - Spawns one goroutine per worker plus one supervisor.
//   - At most poolSize batches wait in the queue; workers block beyond that.
//
// Lifecycle:
//   - Configuration problems and an unreadable file are returned before any
//     worker starts.
//   - The stream ends once every worker has returned and the queue is empty.
//   - Stopping iteration early cancels the remaining workers.
//
// Ordering:
//   - Batches of one worker arrive in file order; batches of different
//     workers interleave arbitrarily.
//
// Errors:
//   - The first worker failure cancels the others and is reported by Err.
//
// The stream MUST be drained with Batches or Samples, or released with
// Close, to avoid a deadlock: otherwise workers block on the full queue
// forever.
func Read[T any](ctx context.Context, path string, process ProcessFunc[T], opts ...Opt) (*Stream[T], error) {
	o := newReadOpts(opts)
	if err := o.validate(); err != nil {
		return nil, err
	}
	if process == nil {
		return nil, ErrNilProcess
	}
	size, err := statFile(path)
	if err != nil {
		return nil, err
	}
	queue, err := NewQueue[Batch[T]](o.poolSize)
	if err != nil {
		return nil, err
	}
	claim, err := newClaimFunc(size, o.workers, o.dynamicClaims)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Stream[T]{
		ws: &workerStation[T]{
			readOpts: o,
			path:     path,
			process:  process,
			queue:    queue,
		},
		size:   size,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		ranges: make([]FileRange, o.workers),
	}

	o.logger.Debug("read started", "path", path, "size", size, "workers", o.workers,
		"pool_size", o.poolSize, "batch_size", o.batchSize, "dynamic_claims", o.dynamicClaims)

	g, gctx := errgroup.WithContext(ctx)
	for i := range o.workers {
		g.Go(func() error {
			rng := claim(i)
			s.setRange(i, rng)
			if err := s.ws.scan(gctx, i, rng); err != nil {
				return &WorkerError{Worker: i, Range: rng, Err: err}
			}
			return nil
		})
	}

	go func() {
		s.finish(g.Wait())
		queue.Close()
		close(s.done)
	}()

	return s, nil
}

func statFile(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// newClaimFunc - maps a worker index to the range it will scan.
func newClaimFunc(size int64, workers int, dynamic bool) (func(worker int) FileRange, error) {
	if dynamic {
		cursor, err := NewCursor(size, workers)
		if err != nil {
			return nil, err
		}
		return func(int) FileRange { return cursor.Claim() }, nil
	}
	ranges, err := Partition(size, workers)
	if err != nil {
		return nil, err
	}
	return func(worker int) FileRange { return ranges[worker] }, nil
}

func (s *Stream[T]) setRange(worker int, rng FileRange) {
	s.mu.Lock()
	s.ranges[worker] = rng
	s.mu.Unlock()
}

// finish - records the terminal status of the run.
func (s *Stream[T]) finish(err error) {
	if err != nil && s.stopped.Load() && errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		s.ws.logger.Error("read failed", "path", s.ws.path, "error", err)
	} else {
		s.ws.logger.Debug("read finished", "path", s.ws.path, "lines", s.ws.lines.Load(), "batches", s.ws.batches.Load())
	}
	s.err.StoreOnce(err)
}

func (s *Stream[T]) stop() {
	s.stopped.Store(true)
	s.cancel()
}

// Batches - yields batches as workers produce them.
//
// Blocks while the queue is empty and workers are still running.
// Can only be ranged over once; later calls yield nothing.
func (s *Stream[T]) Batches() iter.Seq[Batch[T]] {
	return func(yield func(Batch[T]) bool) {
		if !s.iterated.CompareAndSwap(false, true) {
			return
		}
		defer func() {
			<-s.done
			s.cancel()
		}()
		for b := range seq.FromPop[Batch[T]](s.ctx, s.ws.queue.Pop) {
			if !yield(b) {
				s.stop()
				return
			}
		}
	}
}

// Samples - yields every sample of every batch.
func (s *Stream[T]) Samples() iter.Seq[T] {
	return seq.Flatten(s.Batches(), func(b Batch[T]) []T { return b.Samples })
}

// Err - nil if every worker finished its range, otherwise the first
// *WorkerError. Only meaningful once iteration has ended.
func (s *Stream[T]) Err() error {
	return s.err.Load()
}

// Close - stops the run, waits for the workers to return, and reports Err.
func (s *Stream[T]) Close() error {
	s.iterated.Store(true)
	s.stop()
	<-s.done
	return s.Err()
}

// Done - closed once every worker has returned.
func (s *Stream[T]) Done() <-chan struct{} {
	return s.done
}

// Size - size of the file in bytes when Read started.
func (s *Stream[T]) Size() int64 {
	return s.size
}

// Ranges - the range each worker scanned, indexed by worker.
// Entries are zero until the worker has claimed its range.
func (s *Stream[T]) Ranges() []FileRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ranges)
}

// Stats - counters for batches delivered to the queue so far.
func (s *Stream[T]) Stats() Stats {
	return Stats{
		Workers:   s.ws.workers,
		Size:      s.size,
		Lines:     s.ws.lines.Load(),
		Bytes:     s.ws.bytes.Load(),
		Batches:   s.ws.batches.Load(),
		PeakQueue: s.ws.queue.Peak(),
	}
}
