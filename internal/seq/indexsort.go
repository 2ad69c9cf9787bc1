package seq

import (
	"fmt"
	"sort"
)

// Comp compares the elements of data at indexes i and j, returning a value
// <0, 0 or >0. It must impose a total order.
type Comp[T any] func(data T, i, j int) int

// Reversed returns a comparator imposing the reverse ordering of c.
func (c Comp[T]) Reversed() Comp[T] {
	return func(data T, i, j int) int {
		return c(data, j, i)
	}
}

// SortIndexes returns a permutation p of [0, length) such that iterating
// data through p visits it in ascending comparator order:
// cmp(data, p[i], p[i+1]) <= 0 for all valid i. The source itself is never
// touched. length 0 yields an empty permutation, length 1 yields [0].
func SortIndexes[T any](data T, length int, cmp Comp[T]) []int {
	if length < 0 {
		panic(fmt.Sprintf("seq: negative length %d", length))
	}
	if cmp == nil {
		panic("seq: index comparator is required")
	}
	perm := make([]int, length)
	for i := range perm {
		perm[i] = i
	}
	sort.Slice(perm, func(a, b int) bool {
		return cmp(data, perm[a], perm[b]) < 0
	})
	return perm
}

// SortSeq derives the index comparator from an element comparator and
// returns the ascending permutation of s.
func SortSeq[T any](s ISeq[T], cmp func(a, b T) int) []int {
	if cmp == nil {
		panic("seq: element comparator is required")
	}
	return SortIndexes(s, s.Len(), func(data ISeq[T], i, j int) int {
		return cmp(data.Get(i), data.Get(j))
	})
}
