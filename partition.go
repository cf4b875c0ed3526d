package linegather

import "fmt"

// FileRange - nominal [Start, End) byte slice of the file handed to one worker.
// The bounds are not aligned to lines; the worker does that.
type FileRange struct {
	Start int64
	End   int64
}

// Len - number of bytes in the range.
func (r FileRange) Len() int64 {
	return r.End - r.Start
}

// Empty - true when the range holds no bytes.
// Workers given an empty range exit without touching the file.
func (r FileRange) Empty() bool {
	return r.End <= r.Start
}

func (r FileRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// ChunkSize - nominal width of each range.
//
// Rounded up by one so that `workers` chunks always reach the end of the file.
// The last non-empty chunk may be shorter and trailing chunks may be empty.
func ChunkSize(fileSize int64, workers int) (int64, error) {
	if workers < 1 {
		return 0, newInvalidWorkersError(workers)
	}
	if fileSize < 0 {
		return 0, newInvalidFileSizeError(fileSize)
	}
	return fileSize/int64(workers) + 1, nil
}

// Partition - splits [0, fileSize) into exactly `workers` contiguous ranges.
//
// Ranges past the end of the file are {fileSize, fileSize}.
func Partition(fileSize int64, workers int) ([]FileRange, error) {
	chunk, err := ChunkSize(fileSize, workers)
	if err != nil {
		return nil, err
	}
	ranges := make([]FileRange, workers)
	for i := range ranges {
		start := min(int64(i)*chunk, fileSize)
		end := min(start+chunk, fileSize)
		ranges[i] = FileRange{Start: start, End: end}
	}
	return ranges, nil
}
