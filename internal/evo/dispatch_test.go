package evo

import (
	"math/rand"
	"testing"
)

func TestDispatchChoose(t *testing.T) {
	d, err := NewDispatch(
		Gate[int]{Threshold: 0.3, Selector: StochasticUniversalSelector[int]{}},
		Gate[int]{Threshold: 0.8, Selector: TournamentSelector[int]{}},
	)
	if err != nil {
		t.Fatalf("NewDispatch: %v", err)
	}

	if s, ok := d.Choose(0.1); !ok || s.Name() != "stochastic_universal" {
		t.Fatalf("Choose(0.1) = (%v, %v)", s, ok)
	}
	if s, ok := d.Choose(0.5); !ok || s.Name() != "tournament" {
		t.Fatalf("Choose(0.5) = (%v, %v)", s, ok)
	}
	if _, ok := d.Choose(0.9); ok {
		t.Fatal("Choose(0.9) activated a gate above every threshold")
	}
	// Threshold comparison is strict: a draw equal to the threshold does
	// not activate the gate.
	if _, ok := d.Choose(0.8); ok {
		t.Fatal("Choose(0.8) activated a gate at its threshold")
	}
}

func TestDispatchValidation(t *testing.T) {
	if _, err := NewDispatch(Gate[int]{Threshold: 0.5}); err == nil {
		t.Fatal("gate without selector accepted")
	}
	if _, err := NewDispatch(Gate[int]{Threshold: 1.5, Selector: TournamentSelector[int]{}}); err == nil {
		t.Fatal("threshold above one accepted")
	}
	if _, err := NewDispatch(Gate[int]{Threshold: -0.1, Selector: TournamentSelector[int]{}}); err == nil {
		t.Fatal("negative threshold accepted")
	}
}

func TestEmptyDispatchSelectsNothing(t *testing.T) {
	d, err := NewDispatch[int]()
	if err != nil {
		t.Fatalf("NewDispatch: %v", err)
	}
	if _, ok := d.Choose(0); ok {
		t.Fatal("empty dispatch activated a selector")
	}
}

func TestGatedSelectorRoutesAndFallsBack(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	pop := intPopulation(
		intPhenotype(0, 1),
		intPhenotype(1, 2),
		intPhenotype(2, 3),
		intPhenotype(3, 4),
	)

	always, err := NewDispatch(Gate[int]{Threshold: 1, Selector: TruncationSelector[int]{}})
	if err != nil {
		t.Fatalf("NewDispatch: %v", err)
	}
	gated := GatedSelector[int]{Gates: always, Fallback: TournamentSelector[int]{}}

	// A threshold of one always activates truncation, so the single best
	// individual comes back deterministically.
	selected, err := gated.Select(rng, pop, 1, maximize)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if id := phenotypeID(selected.Get(0)); id != 3 {
		t.Fatalf("gated selection picked individual %d, want 3", id)
	}

	never, err := NewDispatch[int]()
	if err != nil {
		t.Fatalf("NewDispatch: %v", err)
	}

	// Without a fallback, a draw that clears every gate is an error.
	bare := GatedSelector[int]{Gates: never}
	if _, err := bare.Select(rng, pop, 1, maximize); err == nil {
		t.Fatal("expected error when no gate activates and no fallback is set")
	}

	withFallback := GatedSelector[int]{Gates: never, Fallback: TruncationSelector[int]{}}
	selected, err = withFallback.Select(rng, pop, 2, maximize)
	if err != nil {
		t.Fatalf("fallback select: %v", err)
	}
	if selected.Len() != 2 {
		t.Fatalf("fallback selected %d individuals, want 2", selected.Len())
	}
}
