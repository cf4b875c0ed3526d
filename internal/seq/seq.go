// Package seq - adapters from blocking sources to iter.Seq.
package seq

import (
	"context"
	"iter"
)

// PopFunc - removes the next item, blocking until one is available.
// ok is false once the source is exhausted or ctx ends.
type PopFunc[T any] func(ctx context.Context) (v T, ok bool)

// FromPop - iter.Seq over successive pops.
// Stops when pop reports !ok or the consumer breaks.
func FromPop[T any](ctx context.Context, pop PopFunc[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := pop(ctx)
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Flatten - yields every item of every group in order.
// items extracts the slice held by each group.
func Flatten[G, T any](in iter.Seq[G], items func(G) []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for g := range in {
			for _, v := range items(g) {
				if !yield(v) {
					return
				}
			}
		}
	}
}

