package stats

import (
	"cmp"
	"fmt"
)

// Filter is a stateful stream filter: it is fed one element at a time and
// reports whether (and which) element to emit. Filters never reorder their
// input, they only skip elements.
type Filter[T any] func(v T) (T, bool)

// StrictlyIncreasing returns a filter that emits an element only when it
// strictly improves on the best seen so far. Ties are excluded.
func StrictlyIncreasing[T cmp.Ordered]() Filter[T] {
	return strictlyBetter(func(a, b T) bool { return a > b })
}

// StrictlyDecreasing returns a filter that emits an element only when it is
// strictly below the smallest seen so far.
func StrictlyDecreasing[T cmp.Ordered]() Filter[T] {
	return strictlyBetter(func(a, b T) bool { return a < b })
}

func strictlyBetter[T any](better func(a, b T) bool) Filter[T] {
	var best T
	seen := false
	return func(v T) (T, bool) {
		if !seen || better(v, best) {
			best = v
			seen = true
			return v, true
		}
		return best, false
	}
}

// SliceBest returns a filter that emits the best of every size consecutive
// observations under the comparator, then resets. A size below one is
// rejected eagerly.
func SliceBest[T any](compare func(a, b T) int, size int) (Filter[T], error) {
	if compare == nil {
		return nil, fmt.Errorf("comparator is required")
	}
	if size < 1 {
		return nil, fmt.Errorf("slice size must be at least one: %d", size)
	}

	var best T
	count := 0
	return func(v T) (T, bool) {
		if count == 0 || compare(v, best) > 0 {
			best = v
		}
		count++
		if count >= size {
			emitted := best
			count = 0
			var zero T
			best = zero
			return emitted, true
		}
		return best, false
	}, nil
}

// SliceMax emits the maximum of every size consecutive observations.
func SliceMax[T cmp.Ordered](size int) (Filter[T], error) {
	return SliceBest(cmp.Compare[T], size)
}

// SliceMin emits the minimum of every size consecutive observations.
func SliceMin[T cmp.Ordered](size int) (Filter[T], error) {
	return SliceBest(func(a, b T) int { return cmp.Compare(b, a) }, size)
}

// Apply runs a filter over a whole slice and collects the emitted elements.
func Apply[T any](f Filter[T], values []T) []T {
	var out []T
	for _, v := range values {
		if emitted, ok := f(v); ok {
			out = append(out, emitted)
		}
	}
	return out
}
