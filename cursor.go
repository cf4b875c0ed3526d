package linegather

import "sync/atomic"

// Cursor - hands out consecutive ranges of a file, one per Claim.
//
// Safe for concurrent use. Claims never overlap and together cover [0, size).
// Once the file is exhausted every Claim returns {size, size}.
type Cursor struct {
	next  atomic.Int64
	chunk int64
	size  int64
}

// NewCursor - cursor over a file of fileSize bytes split for `workers` claims.
func NewCursor(fileSize int64, workers int) (*Cursor, error) {
	chunk, err := ChunkSize(fileSize, workers)
	if err != nil {
		return nil, err
	}
	return &Cursor{chunk: chunk, size: fileSize}, nil
}

// Claim - takes the next range.
func (c *Cursor) Claim() FileRange {
	for {
		start := c.next.Load()
		if start >= c.size {
			return FileRange{Start: c.size, End: c.size}
		}
		end := min(start+c.chunk, c.size)
		if c.next.CompareAndSwap(start, end) {
			return FileRange{Start: start, End: end}
		}
	}
}
