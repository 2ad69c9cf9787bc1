// Package seq provides fixed-length ordered containers in two flavors: the
// read-only ISeq and the in-place writable MSeq. Both are cheap views over a
// backing slice; sub-sequences share storage with their parent. Length is
// fixed at construction and no resizing operation exists.
package seq

import (
	"fmt"
	"math/rand"
)

// mutable is the minimal primitive the shared sequence helpers operate on.
type mutable[T any] interface {
	Len() int
	Get(i int) T
	Set(i int, v T)
}

func checkIndex(i, length int) {
	if i < 0 || i >= length {
		panic(fmt.Sprintf("seq: index %d out of range [0, %d)", i, length))
	}
}

func checkRange(start, end, length int) {
	if start < 0 || end > length || start > end {
		panic(fmt.Sprintf("seq: range [%d, %d) out of bounds for length %d", start, end, length))
	}
}

func fill[T any](s mutable[T], v T) {
	for i := 0; i < s.Len(); i++ {
		s.Set(i, v)
	}
}

func swap[T any](s mutable[T], i, j int) {
	checkIndex(i, s.Len())
	checkIndex(j, s.Len())
	vi, vj := s.Get(i), s.Get(j)
	s.Set(i, vj)
	s.Set(j, vi)
}

// swapRange exchanges a[start:end] with the equal-length window of b
// starting at bStart. Both windows are bounds-checked before any element
// moves, so a failed swap leaves both sequences untouched.
func swapRange[T any](a mutable[T], start, end int, b mutable[T], bStart int) {
	checkRange(start, end, a.Len())
	checkRange(bStart, bStart+(end-start), b.Len())
	for i := 0; i < end-start; i++ {
		av, bv := a.Get(start+i), b.Get(bStart+i)
		a.Set(start+i, bv)
		b.Set(bStart+i, av)
	}
}

// shuffle performs a Fisher-Yates permutation: for j from length-1 down to
// 1, position j is swapped with a uniformly chosen position in [0, j].
func shuffle[T any](s mutable[T], r *rand.Rand) {
	if r == nil {
		panic("seq: random source is required")
	}
	for j := s.Len() - 1; j > 0; j-- {
		swap[T](s, j, r.Intn(j+1))
	}
}
