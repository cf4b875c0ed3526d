package linegather

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWorkers - the worker count is below 1.
	ErrInvalidWorkers = errors.New("must use at least 1 worker")
	// ErrInvalidPoolSize - the queue capacity is below 1.
	ErrInvalidPoolSize = errors.New("pool size must be at least 1")
	// ErrInvalidBatchSize - the batch size is below 1.
	ErrInvalidBatchSize = errors.New("batch size must be at least 1")
	// ErrInvalidReadBuffer - the read buffer is too small.
	ErrInvalidReadBuffer = errors.New("read buffer must be at least 16 bytes")
	// ErrInvalidFileSize - a negative file size was partitioned.
	ErrInvalidFileSize = errors.New("file size must be at least 0")
	// ErrNilProcess - Read was called without a process func.
	ErrNilProcess = errors.New("process func must not be nil")
	// ErrNotRegularFile - the path does not point to a regular file.
	ErrNotRegularFile = errors.New("not a regular file")
	// ErrInvalidUTF8 - a line is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("line is not valid utf-8")
)

func newInvalidWorkersError(workers int) error {
	return fmt.Errorf("%w. workers: %v", ErrInvalidWorkers, workers)
}

func newInvalidPoolSizeError(poolSize int) error {
	return fmt.Errorf("%w. poolSize: %v", ErrInvalidPoolSize, poolSize)
}

func newInvalidBatchSizeError(batchSize int) error {
	return fmt.Errorf("%w. batchSize: %v", ErrInvalidBatchSize, batchSize)
}

func newInvalidReadBufferError(size int) error {
	return fmt.Errorf("%w. readBufferSize: %v", ErrInvalidReadBuffer, size)
}

func newInvalidFileSizeError(size int64) error {
	return fmt.Errorf("%w. fileSize: %v", ErrInvalidFileSize, size)
}

func newInvalidUTF8Error(offset int64) error {
	return fmt.Errorf("%w. offset: %v", ErrInvalidUTF8, offset)
}

// WorkerError - reports why a worker stopped before finishing its range.
type WorkerError struct {
	Worker int
	Range  FileRange
	Err    error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d %v: %v", e.Worker, e.Range, e.Err)
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}
