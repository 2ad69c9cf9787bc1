package seq

import (
	"fmt"
	"iter"
	"math/rand"
	"strings"
)

// MSeq is a fixed-length, in-place writable buffer. Sub-sequences share
// backing storage with their parent, so writes through a window are visible
// through the parent and vice versa. An MSeq is not internally synchronized;
// concurrent access to the same instance (or any view of it) needs external
// locking.
type MSeq[T any] struct {
	data []T
}

// NewMSeq allocates a zero-valued mutable sequence of length n. A negative
// n panics; n == 0 allocates nothing.
func NewMSeq[T any](n int) MSeq[T] {
	if n < 0 {
		panic(fmt.Sprintf("seq: negative length %d", n))
	}
	if n == 0 {
		return MSeq[T]{}
	}
	return MSeq[T]{data: make([]T, n)}
}

// MSeqOf constructs a mutable sequence from the given values.
func MSeqOf[T any](vs ...T) MSeq[T] {
	if len(vs) == 0 {
		return MSeq[T]{}
	}
	data := make([]T, len(vs))
	copy(data, vs)
	return MSeq[T]{data: data}
}

func (s MSeq[T]) Len() int {
	return len(s.data)
}

// Get returns the element at index i, panicking outside [0, Len).
func (s MSeq[T]) Get(i int) T {
	checkIndex(i, len(s.data))
	return s.data[i]
}

// Set writes the element at index i, panicking outside [0, Len).
func (s MSeq[T]) Set(i int, v T) {
	checkIndex(i, len(s.data))
	s.data[i] = v
}

// Fill writes v into every position.
func (s MSeq[T]) Fill(v T) {
	fill[T](s, v)
}

// Swap exchanges the elements at i and j in place.
func (s MSeq[T]) Swap(i, j int) {
	swap[T](s, i, j)
}

// SwapRange exchanges s[start:end] with the equal-length window of other
// starting at otherStart. Panics if either window exceeds its sequence's
// bounds; nothing is moved on failure.
func (s MSeq[T]) SwapRange(start, end int, other MSeq[T], otherStart int) {
	swapRange[T](s, start, end, other, otherStart)
}

// Shuffle permutes the elements in place using the Fisher-Yates algorithm,
// drawing from the supplied random source.
func (s MSeq[T]) Shuffle(r *rand.Rand) {
	shuffle[T](s, r)
}

// SubSeq returns a writable window over [start, end) sharing storage with s.
func (s MSeq[T]) SubSeq(start, end int) MSeq[T] {
	checkRange(start, end, len(s.data))
	return MSeq[T]{data: s.data[start:end]}
}

// ToISeq returns an immutable snapshot of the current contents. The
// snapshot is isolated: further mutation of s is not observable through it.
func (s MSeq[T]) ToISeq() ISeq[T] {
	if len(s.data) == 0 {
		return ISeq[T]{}
	}
	data := make([]T, len(s.data))
	copy(data, s.data)
	return ISeq[T]{data: data}
}

// Slice copies the elements out into a plain slice.
func (s MSeq[T]) Slice() []T {
	if len(s.data) == 0 {
		return nil
	}
	out := make([]T, len(s.data))
	copy(out, s.data)
	return out
}

// Values iterates the elements in order.
func (s MSeq[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s.data {
			if !yield(v) {
				return
			}
		}
	}
}

func (s MSeq[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range s.data {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%v", v)
	}
	b.WriteByte(']')
	return b.String()
}
