package syncvalue_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jaredmtdev/linegather/internal/syncvalue"
	"github.com/stretchr/testify/assert"
)

func TestConcurrentLoad(t *testing.T) {
	v := syncvalue.Value[int]{}
	v.Store(3)

	wg := sync.WaitGroup{}
	for range 1000 {
		wg.Go(func() {
			assert.Equal(t, 3, v.Load())
		})
	}
	wg.Wait()
}

func TestConcurrentStore(t *testing.T) {
	v := syncvalue.Value[int]{}
	wg := sync.WaitGroup{}
	for i := range 1000 {
		wg.Go(func() {
			v.Store(i)
		})
	}
	wg.Wait()

	assert.LessOrEqual(t, 0, v.Load())
	assert.Less(t, v.Load(), 1000)
}

func TestStoreOnceKeepsFirst(t *testing.T) {
	v := syncvalue.Value[error]{}
	first := errors.New("first")
	assert.True(t, v.StoreOnce(first))
	assert.False(t, v.StoreOnce(errors.New("second")))
	assert.Equal(t, first, v.Load())
}

func TestStoreOnceConcurrent(t *testing.T) {
	v := syncvalue.Value[int]{}
	var stored atomic.Int32
	wg := sync.WaitGroup{}
	for i := range 100 {
		wg.Go(func() {
			if v.StoreOnce(i + 1) {
				stored.Add(1)
			}
		})
	}
	wg.Wait()
	assert.Equal(t, int32(1), stored.Load())
	assert.Positive(t, v.Load())
}
