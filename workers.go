package linegather

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"unicode/utf8"
)

// Defaults used when no option overrides them.
const (
	DefaultPoolSize       = 1024
	DefaultBatchSize      = 128
	DefaultReadBufferSize = 64 * 1024

	minReadBufferSize = 16
)

// DefaultWorkers - one worker per core minus one for the consumer, at least 1.
func DefaultWorkers() int {
	return max(runtime.NumCPU()-1, 1)
}

// readOpts - configures behavior of Read.
type readOpts struct {
	workers        int
	poolSize       int
	batchSize      int
	readBufferSize int
	dynamicClaims  bool
	logger         *slog.Logger
}

func (ro *readOpts) validate() error {
	if ro.workers < 1 {
		return newInvalidWorkersError(ro.workers)
	}
	if ro.poolSize < 1 {
		return newInvalidPoolSizeError(ro.poolSize)
	}
	if ro.batchSize < 1 {
		return newInvalidBatchSizeError(ro.batchSize)
	}
	if ro.readBufferSize < minReadBufferSize {
		return newInvalidReadBufferError(ro.readBufferSize)
	}
	return nil
}

// Opt - options used to configure Read.
type Opt func(o *readOpts)

// WithWorkers - set the number of concurrent workers.
// Each worker scans exactly one range of the file.
//
// Uses DefaultWorkers() by default.
func WithWorkers(workers int) Opt {
	return func(o *readOpts) {
		o.workers = workers
	}
}

// WithPoolSize - set the maximum number of batches waiting for the consumer.
// Workers block once the pool is full.
//
// Uses DefaultPoolSize by default.
func WithPoolSize(poolSize int) Opt {
	return func(o *readOpts) {
		o.poolSize = poolSize
	}
}

// WithBatchSize - set the maximum number of samples per batch.
//
// Uses DefaultBatchSize by default.
func WithBatchSize(batchSize int) Opt {
	return func(o *readOpts) {
		o.batchSize = batchSize
	}
}

// WithReadBufferSize - set the size of each worker's read buffer.
func WithReadBufferSize(size int) Opt {
	return func(o *readOpts) {
		o.readBufferSize = size
	}
}

// WithDynamicClaims - workers claim their range from a shared Cursor when
// they start instead of receiving a precomputed one.
func WithDynamicClaims() Opt {
	return func(o *readOpts) {
		o.dynamicClaims = true
	}
}

// WithLogger - log worker activity to logger.
// Nothing is logged by default.
func WithLogger(logger *slog.Logger) Opt {
	return func(o *readOpts) {
		o.logger = logger
	}
}

func newReadOpts(opts []Opt) *readOpts {
	o := &readOpts{
		workers:        DefaultWorkers(),
		poolSize:       DefaultPoolSize,
		batchSize:      DefaultBatchSize,
		readBufferSize: DefaultReadBufferSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// workerStation - shared context for the workers of one Read.
type workerStation[T any] struct {
	*readOpts

	path    string
	process ProcessFunc[T]
	queue   *Queue[Batch[T]]

	lines   atomic.Int64
	bytes   atomic.Int64
	batches atomic.Int64
}

// push - sends a batch to the queue, blocking while it is full.
func (ws *workerStation[T]) push(ctx context.Context, b Batch[T]) error {
	if err := ws.queue.Push(ctx, b); err != nil {
		return err
	}
	ws.lines.Add(int64(len(b.Samples)))
	ws.bytes.Add(b.Bytes)
	ws.batches.Add(1)
	return nil
}

func (ws *workerStation[T]) newBatch(worker, seq int, offset int64) Batch[T] {
	return Batch[T]{
		Worker:  worker,
		Seq:     seq,
		Offset:  offset,
		Samples: make([]T, 0, ws.batchSize),
	}
}

// scan - processes every line whose first byte lies in rng.
//
// A line that starts before rng.Start belongs to the previous range and is
// skipped. The last line read may run past rng.End.
func (ws *workerStation[T]) scan(ctx context.Context, worker int, rng FileRange) error {
	if rng.Empty() {
		ws.logger.Debug("worker got empty range", "worker", worker, "range", rng.String())
		return nil
	}
	f, err := os.Open(ws.path)
	if err != nil {
		return err
	}
	defer f.Close()

	// start one byte early so a line beginning exactly at rng.Start is kept
	pos := max(rng.Start-1, 0)
	if _, err := f.Seek(pos, io.SeekStart); err != nil {
		return err
	}
	r := bufio.NewReaderSize(f, ws.readBufferSize)

	var line []byte
	if rng.Start > 0 {
		line, err = readLine(r, line)
		pos += int64(len(line))
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	ws.logger.Debug("worker started", "worker", worker, "range", rng.String(), "offset", pos)

	var seq int
	b := ws.newBatch(worker, seq, pos)
	for pos < rng.End {
		line, err = readLine(r, line)
		if len(line) > 0 {
			if !utf8.Valid(line) {
				return newInvalidUTF8Error(pos)
			}
			b.Samples = append(b.Samples, ws.process(string(trimEOL(line))))
			b.Bytes += int64(len(line))
			pos += int64(len(line))
			if len(b.Samples) == ws.batchSize {
				if err := ws.push(ctx, b); err != nil {
					return err
				}
				seq++
				b = ws.newBatch(worker, seq, pos)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}
	if len(b.Samples) > 0 {
		if err := ws.push(ctx, b); err != nil {
			return err
		}
		seq++
	}

	ws.logger.Debug("worker finished", "worker", worker, "range", rng.String(), "batches", seq, "end", pos)
	return nil
}

// readLine - reads through the next '\n' (or EOF) into buf, growing it
// when the line is longer than the reader's buffer.
func readLine(r *bufio.Reader, buf []byte) ([]byte, error) {
	buf = buf[:0]
	for {
		chunk, err := r.ReadSlice('\n')
		buf = append(buf, chunk...)
		if !errors.Is(err, bufio.ErrBufferFull) {
			return buf, err
		}
	}
}

// trimEOL - strips one trailing "\n" or "\r\n".
func trimEOL(line []byte) []byte {
	n := len(line)
	if n == 0 || line[n-1] != '\n' {
		return line
	}
	n--
	if n > 0 && line[n-1] == '\r' {
		n--
	}
	return line[:n]
}
