package seq

import (
	"fmt"
	"iter"
	"strings"
)

// ISeq is a read-only, fixed-length, ordered container. The zero value is
// the empty sequence. An ISeq is safe for unsynchronized concurrent reads;
// its backing storage is never written after construction.
type ISeq[T any] struct {
	data []T
}

// Of constructs an immutable sequence from the given values. A zero-length
// call yields the shared empty sequence without allocating.
func Of[T any](vs ...T) ISeq[T] {
	if len(vs) == 0 {
		return ISeq[T]{}
	}
	data := make([]T, len(vs))
	copy(data, vs)
	return ISeq[T]{data: data}
}

// FromSlice copies the given slice into a fresh immutable sequence.
func FromSlice[T any](vs []T) ISeq[T] {
	return Of(vs...)
}

// Generate builds an immutable sequence of length n by calling fn for every
// index in order. A negative n panics; n == 0 allocates nothing.
func Generate[T any](n int, fn func(i int) T) ISeq[T] {
	if n < 0 {
		panic(fmt.Sprintf("seq: negative length %d", n))
	}
	if fn == nil {
		panic("seq: generator function is required")
	}
	if n == 0 {
		return ISeq[T]{}
	}
	data := make([]T, n)
	for i := range data {
		data[i] = fn(i)
	}
	return ISeq[T]{data: data}
}

// Empty returns the empty immutable sequence.
func Empty[T any]() ISeq[T] {
	return ISeq[T]{}
}

func (s ISeq[T]) Len() int {
	return len(s.data)
}

// Get returns the element at index i, panicking outside [0, Len).
func (s ISeq[T]) Get(i int) T {
	checkIndex(i, len(s.data))
	return s.data[i]
}

// SubSeq returns a view of s covering [start, end). The view shares backing
// storage with s; no elements are copied.
func (s ISeq[T]) SubSeq(start, end int) ISeq[T] {
	checkRange(start, end, len(s.data))
	return ISeq[T]{data: s.data[start:end]}
}

// Copy returns a mutable sequence holding an independent copy of s.
// Converting immutable to mutable always copies.
func (s ISeq[T]) Copy() MSeq[T] {
	if len(s.data) == 0 {
		return MSeq[T]{}
	}
	data := make([]T, len(s.data))
	copy(data, s.data)
	return MSeq[T]{data: data}
}

// Slice copies the elements out into a plain slice.
func (s ISeq[T]) Slice() []T {
	if len(s.data) == 0 {
		return nil
	}
	out := make([]T, len(s.data))
	copy(out, s.data)
	return out
}

// Values iterates the elements in order.
func (s ISeq[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s.data {
			if !yield(v) {
				return
			}
		}
	}
}

func (s ISeq[T]) String() string {
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

// Map produces a new immutable sequence of the same length with fn applied
// to every element in order. The source is not modified. This is a free
// function because Go methods cannot introduce a second type parameter.
func Map[T, U any](s ISeq[T], fn func(T) U) ISeq[U] {
	if fn == nil {
		panic("seq: map function is required")
	}
	if len(s.data) == 0 {
		return ISeq[U]{}
	}
	data := make([]U, len(s.data))
	for i, v := range s.data {
		data[i] = fn(v)
	}
	return ISeq[U]{data: data}
}
