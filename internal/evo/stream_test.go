package evo

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"panmixia/internal/model"
)

func TestStreamGenerationNumbersCountFromOne(t *testing.T) {
	rng := rand.New(rand.NewSource(43))
	e := mustEngine(t, onesConfig(rng))
	stream := e.Stream()

	for n := 1; n <= 10; n++ {
		result, err := stream.Next(context.Background())
		if err != nil {
			t.Fatalf("pull %d: %v", n, err)
		}
		if result.Generation != n {
			t.Fatalf("pull %d produced generation %d", n, result.Generation)
		}
	}
}

func TestStreamDoesNotReExecuteEmittedGenerations(t *testing.T) {
	rng := rand.New(rand.NewSource(47))
	e := mustEngine(t, onesConfig(rng))
	stream := e.Stream()

	results, err := stream.Run(context.Background(), ByGeneration[bool](5))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("run emitted %d results, want 5", len(results))
	}

	// Continuing the same stream picks up where the run stopped.
	next, err := stream.Next(context.Background())
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if next.Generation != 6 {
		t.Fatalf("continuation produced generation %d, want 6", next.Generation)
	}
}

func TestStreamSubscriptionsRestartIndependently(t *testing.T) {
	rng := rand.New(rand.NewSource(53))
	e := mustEngine(t, onesConfig(rng))

	first, err := e.Stream().Next(context.Background())
	if err != nil {
		t.Fatalf("first stream: %v", err)
	}
	second, err := e.Stream().Next(context.Background())
	if err != nil {
		t.Fatalf("second stream: %v", err)
	}
	if first.Generation != 1 || second.Generation != 1 {
		t.Fatalf("fresh subscriptions did not restart: %d, %d",
			first.Generation, second.Generation)
	}
}

func TestStreamFromCustomStart(t *testing.T) {
	rng := rand.New(rand.NewSource(59))
	cfg := onesConfig(rng)
	e := mustEngine(t, cfg)

	supplied := 0
	stream := e.StreamFrom(func(rng *rand.Rand) model.EvolutionStart[bool] {
		supplied++
		return model.EvolutionStart[bool]{
			Population: e.initialStart(rng).Population,
			Generation: 7,
		}
	})

	if supplied != 0 {
		t.Fatal("start supplier ran before the first pull")
	}
	result, err := stream.Next(context.Background())
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if result.Generation != 7 {
		t.Fatalf("generation = %d, want 7", result.Generation)
	}
	if _, err := stream.Next(context.Background()); err != nil {
		t.Fatalf("next: %v", err)
	}
	if supplied != 1 {
		t.Fatalf("start supplier ran %d times, want 1", supplied)
	}
}

func TestStreamTracksBestSoFar(t *testing.T) {
	rng := rand.New(rand.NewSource(61))
	cfg := onesConfig(rng)
	mut, err := NewMutator(0.05, func(rng *rand.Rand, g bool) bool { return !g })
	if err != nil {
		t.Fatalf("NewMutator: %v", err)
	}
	cfg.Alterers = []Alterer[bool]{mut}
	e := mustEngine(t, cfg)

	results, err := e.Stream().Run(context.Background(), ByGeneration[bool](40))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	prev := -1.0
	for _, r := range results {
		best, ok := r.BestFitness()
		if !ok {
			t.Fatalf("generation %d has no best", r.Generation)
		}
		if best < prev {
			t.Fatalf("best-so-far decreased at generation %d: %v -> %v",
				r.Generation, prev, best)
		}
		prev = best
	}
}

func TestLimitByGeneration(t *testing.T) {
	limit := ByGeneration[bool](3)
	if !limit(model.EvolutionResult[bool]{Generation: 2}) {
		t.Fatal("stopped before the limit")
	}
	if limit(model.EvolutionResult[bool]{Generation: 3}) {
		t.Fatal("continued past the limit")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("ByGeneration(0) did not panic")
		}
	}()
	ByGeneration[bool](0)
}

func resultWithBest(fitness float64) model.EvolutionResult[int] {
	best := intPhenotype(0, fitness)
	return model.EvolutionResult[int]{Generation: 1, Best: &best}
}

func TestLimitByFitnessThreshold(t *testing.T) {
	maximizing := ByFitnessThreshold[int](8, false)
	if !maximizing(resultWithBest(7.9)) {
		t.Fatal("stopped below the threshold")
	}
	if maximizing(resultWithBest(8)) {
		t.Fatal("continued at the threshold")
	}

	minimizing := ByFitnessThreshold[int](0.5, true)
	if !minimizing(resultWithBest(0.9)) {
		t.Fatal("stopped above the minimizing threshold")
	}
	if minimizing(resultWithBest(0.5)) {
		t.Fatal("continued at the minimizing threshold")
	}
}

func TestLimitBySteadyFitness(t *testing.T) {
	limit := BySteadyFitness[int](2, false)

	if !limit(resultWithBest(1)) {
		t.Fatal("stopped on first result")
	}
	if !limit(resultWithBest(2)) {
		t.Fatal("stopped on improvement")
	}
	if !limit(resultWithBest(2)) {
		t.Fatal("stopped after a single stable generation")
	}
	if limit(resultWithBest(2)) {
		return
	}
	t.Fatal("continued after two stable generations")
}

func TestLimitByDuration(t *testing.T) {
	limit := ByDuration[int](30 * time.Millisecond)
	if !limit(resultWithBest(1)) {
		t.Fatal("stopped on first result")
	}
	time.Sleep(50 * time.Millisecond)
	if limit(resultWithBest(1)) {
		t.Fatal("continued past the budget")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("ByDuration(0) did not panic")
		}
	}()
	ByDuration[int](0)
}

// End-to-end: 8-bit ones counting, N=50, 100 generations. The best fitness
// observed across the result sequence is non-decreasing.
func TestOnesCountingEvolution(t *testing.T) {
	rng := rand.New(rand.NewSource(1234))
	cfg := onesConfig(rng)
	mut, err := NewMutator(0.03, func(rng *rand.Rand, g bool) bool { return !g })
	if err != nil {
		t.Fatalf("NewMutator: %v", err)
	}
	cross, err := NewSinglePointCrossover[bool](0.3)
	if err != nil {
		t.Fatalf("NewSinglePointCrossover: %v", err)
	}
	cfg.Alterers = []Alterer[bool]{cross, mut}
	cfg.OffspringSelector = StochasticUniversalSelector[bool]{}
	e := mustEngine(t, cfg)

	results, err := e.Stream().Run(context.Background(), ByGeneration[bool](100))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 100 {
		t.Fatalf("emitted %d generations, want 100", len(results))
	}

	prev := -1.0
	for _, r := range results {
		best, ok := r.BestFitness()
		if !ok {
			t.Fatalf("generation %d has no best", r.Generation)
		}
		if best < prev {
			t.Fatalf("best fitness decreased at generation %d: %v -> %v",
				r.Generation, prev, best)
		}
		prev = best
	}

	// 50 random 8-bit individuals over 100 generations all but surely
	// reach the all-ones optimum.
	if prev != 8 {
		t.Fatalf("final best fitness = %v, want 8", prev)
	}
}
