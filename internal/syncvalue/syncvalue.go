// Package syncvalue - allowing any type to be read and written across goroutines.
package syncvalue

import "sync"

// Value - guards a single value of any type against race conditions.
type Value[T any] struct {
	mu    sync.RWMutex
	value T
	set   bool
}

// Load - loads current value.
func (v *Value[T]) Load() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Store - stores new value.
func (v *Value[T]) Store(val T) {
	v.mu.Lock()
	v.value = val
	v.set = true
	v.mu.Unlock()
}

// StoreOnce - stores val only if nothing has been stored yet.
// Reports whether val was stored.
func (v *Value[T]) StoreOnce(val T) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.set {
		return false
	}
	v.value = val
	v.set = true
	return true
}
