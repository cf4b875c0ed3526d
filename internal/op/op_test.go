package op_test

import (
	"testing"

	"github.com/jaredmtdev/linegather/internal/op"
	"github.com/stretchr/testify/assert"
)

func TestPosMod(t *testing.T) {
	for i := -10; i < 20; i++ {
		result := op.PosMod(i, 5)
		assert.LessOrEqual(t, 0, result)
		assert.Less(t, result, 5)
	}
	assert.Equal(t, 2, op.PosMod(2, 3))
	assert.Equal(t, 0, op.PosMod(-3, 3))
	assert.Equal(t, 2, op.PosMod(-1, 3))
}

func TestWrap(t *testing.T) {
	for i := -100; i < 100; i++ {
		result := op.Wrap(i, 1, 8)
		assert.GreaterOrEqual(t, result, 1)
		assert.LessOrEqual(t, result, 8)
	}
	assert.Equal(t, 1, op.Wrap(1, 1, 8))
	assert.Equal(t, 8, op.Wrap(8, 1, 8))
	assert.Equal(t, 1, op.Wrap(9, 1, 8))
	assert.Equal(t, 8, op.Wrap(0, 1, 8))
	assert.Equal(t, int64(5), op.Wrap(int64(5), 5, 5))
}
