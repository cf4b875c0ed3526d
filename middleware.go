package linegather

import (
	"strings"
	"sync/atomic"
)

// ProcessFunc - turns one line (terminator already removed) into a sample.
// Called concurrently from every worker, so it must be safe for that.
type ProcessFunc[T any] func(line string) T

// Middleware - wraps process funcs.
type Middleware[T any] func(ProcessFunc[T]) ProcessFunc[T]

// Chain - middleware together in FIFO execution order:
// the first middleware sees the line first.
func Chain[T any](mws ...Middleware[T]) Middleware[T] {
	return func(p ProcessFunc[T]) ProcessFunc[T] {
		for i := len(mws) - 1; i >= 0; i-- {
			p = mws[i](p)
		}
		return p
	}
}

// TrimSpace - strips leading and trailing white space before calling next.
func TrimSpace[T any]() Middleware[T] {
	return func(next ProcessFunc[T]) ProcessFunc[T] {
		return func(line string) T {
			return next(strings.TrimSpace(line))
		}
	}
}

// Counter - adds one to n for every processed line.
func Counter[T any](n *atomic.Int64) Middleware[T] {
	return func(next ProcessFunc[T]) ProcessFunc[T] {
		return func(line string) T {
			n.Add(1)
			return next(line)
		}
	}
}

// Raw - returns the line unchanged.
func Raw(line string) string {
	return line
}

// Strip - returns the line without leading and trailing white space.
func Strip(line string) string {
	return strings.TrimSpace(line)
}
