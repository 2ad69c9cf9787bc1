// Package stats provides mergeable online statistics accumulators. The
// accumulators are order-insensitive and combine associatively and
// commutatively, which makes them usable as map/reduce collectors over
// parallel fitness evaluation: accumulate partitions independently, then
// Combine. A single instance is not safe for concurrent Observe calls.
package stats

import (
	"cmp"
	"fmt"
)

// MinMax tracks the current minimum and maximum under a comparator.
// "No value yet" is an explicit absent state; comparing a present value
// against an absent one always keeps the present one, and combining two
// absent accumulators stays absent.
type MinMax[T any] struct {
	cmp      func(a, b T) int
	min, max T
	present  bool
	count    int64
}

// NewMinMax creates an accumulator over the given comparator. The
// comparator is required.
func NewMinMax[T any](compare func(a, b T) int) *MinMax[T] {
	if compare == nil {
		panic("stats: comparator is required")
	}
	return &MinMax[T]{cmp: compare}
}

// MinMaxOf creates an accumulator over the natural order of T.
func MinMaxOf[T cmp.Ordered]() *MinMax[T] {
	return NewMinMax(cmp.Compare[T])
}

// Observe folds one value into the accumulator.
func (m *MinMax[T]) Observe(v T) {
	if !m.present {
		m.min, m.max = v, v
		m.present = true
	} else {
		if m.cmp(v, m.min) < 0 {
			m.min = v
		}
		if m.cmp(v, m.max) > 0 {
			m.max = v
		}
	}
	m.count++
}

// Combine merges other into m and returns m. The operation is associative
// and commutative with respect to the resulting state.
func (m *MinMax[T]) Combine(other *MinMax[T]) *MinMax[T] {
	if other == nil {
		panic("stats: combine target is required")
	}
	if other.present {
		if !m.present {
			m.min, m.max = other.min, other.max
			m.present = true
		} else {
			if m.cmp(other.min, m.min) < 0 {
				m.min = other.min
			}
			if m.cmp(other.max, m.max) > 0 {
				m.max = other.max
			}
		}
	}
	m.count += other.count
	return m
}

// Count is the number of observed values.
func (m *MinMax[T]) Count() int64 {
	return m.count
}

// Min returns the current minimum and whether any value has been observed.
func (m *MinMax[T]) Min() (T, bool) {
	return m.min, m.present
}

// Max returns the current maximum and whether any value has been observed.
func (m *MinMax[T]) Max() (T, bool) {
	return m.max, m.present
}

// SameState reports whether two accumulators hold the same current min and
// max, ignoring the count history that produced them. Two absent
// accumulators have the same state. If it holds, observing the same value
// on both preserves it.
func (m *MinMax[T]) SameState(other *MinMax[T]) bool {
	if m == other {
		return true
	}
	if m.present != other.present {
		return false
	}
	if !m.present {
		return true
	}
	return m.cmp(m.min, other.min) == 0 && m.cmp(m.max, other.max) == 0
}

func (m *MinMax[T]) String() string {
	if !m.present {
		return fmt.Sprintf("MinMax[count=%d, empty]", m.count)
	}
	return fmt.Sprintf("MinMax[count=%d, min=%v, max=%v]", m.count, m.min, m.max)
}
