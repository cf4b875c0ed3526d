// Package op - integer helpers for turning fuzzer input into valid settings.
package op

// Integer - integer types.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// PosMod - modulus operator that always returns positive number.
func PosMod[T Integer](x, m T) T {
	return (x%m + m) % m
}

// Wrap - maps any x onto the closed interval [lo, hi].
func Wrap[T Integer](x, lo, hi T) T {
	return lo + PosMod(x-lo, hi-lo+1)
}
