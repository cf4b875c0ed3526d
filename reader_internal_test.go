package linegather

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamDrainsQueueThroughPop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("line\n", 50)), 0o600))

	s, err := Read(context.Background(), path, Raw, WithWorkers(3), WithBatchSize(4), WithPoolSize(2))
	require.NoError(t, err)

	var lines int
	for b := range s.Batches() {
		lines += b.Len()
	}
	require.NoError(t, s.Err())
	assert.Equal(t, 50, lines)

	// closed and drained: nothing left for another consumer
	assert.True(t, s.ws.queue.IsEmpty())
	_, ok := s.ws.queue.Pop(context.Background())
	assert.False(t, ok)
}
