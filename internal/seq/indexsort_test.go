package seq

import (
	"cmp"
	"math/rand"
	"sort"
	"testing"
)

func TestSortIndexesOrdersWithoutMutating(t *testing.T) {
	rng := rand.New(rand.NewSource(13))

	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(40)
		values := make([]float64, n)
		for i := range values {
			values[i] = rng.NormFloat64()
		}
		original := append([]float64(nil), values...)

		perm := SortIndexes(values, n, func(a []float64, i, j int) int {
			return cmp.Compare(a[i], a[j])
		})

		if len(perm) != n {
			t.Fatalf("permutation length = %d, want %d", len(perm), n)
		}
		seen := make([]bool, n)
		for _, p := range perm {
			if p < 0 || p >= n || seen[p] {
				t.Fatalf("not a bijection on [0, %d): %v", n, perm)
			}
			seen[p] = true
		}

		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		for i := range perm {
			if values[perm[i]] != sorted[i] {
				t.Fatalf("values[perm[%d]] = %v, want %v", i, values[perm[i]], sorted[i])
			}
		}
		for i := range values {
			if values[i] != original[i] {
				t.Fatal("source was mutated")
			}
		}
	}
}

func TestSortIndexesEdgeCases(t *testing.T) {
	intCmp := func(a []int, i, j int) int { return cmp.Compare(a[i], a[j]) }

	if perm := SortIndexes(nil, 0, intCmp); len(perm) != 0 {
		t.Fatalf("n=0: got %v", perm)
	}
	if perm := SortIndexes([]int{7}, 1, intCmp); len(perm) != 1 || perm[0] != 0 {
		t.Fatalf("n=1: got %v", perm)
	}
}

func TestSortSeq(t *testing.T) {
	s := Of("pear", "apple", "fig", "banana")
	perm := SortSeq(s, func(a, b string) int { return cmp.Compare(a, b) })

	want := []string{"apple", "banana", "fig", "pear"}
	for i, w := range want {
		if got := s.Get(perm[i]); got != w {
			t.Fatalf("s[perm[%d]] = %q, want %q", i, got, w)
		}
	}
}

func TestCompReversed(t *testing.T) {
	values := []int{3, 1, 2}
	asc := Comp[[]int](func(a []int, i, j int) int { return cmp.Compare(a[i], a[j]) })

	perm := SortIndexes(values, len(values), asc.Reversed())
	want := []int{3, 2, 1}
	for i, w := range want {
		if values[perm[i]] != w {
			t.Fatalf("descending[%d] = %d, want %d", i, values[perm[i]], w)
		}
	}
}
