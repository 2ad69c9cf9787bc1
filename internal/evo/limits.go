package evo

import (
	"fmt"
	"time"

	"panmixia/internal/model"
)

// Limit decides, after each emitted result, whether the stream should keep
// going. Returning false ends the run with the current result included.
// Limits may be stateful; create a fresh one per run.
type Limit[G any] func(model.EvolutionResult[G]) bool

// ByGeneration keeps the stream alive until the given generation number has
// been produced. Panics for generations below one.
func ByGeneration[G any](generations int) Limit[G] {
	if generations < 1 {
		panic(fmt.Sprintf("evo: generation limit must be at least one: %d", generations))
	}
	return func(r model.EvolutionResult[G]) bool {
		return r.Generation < generations
	}
}

// ByFitnessThreshold stops once the best fitness reaches the threshold:
// at or above it when maximizing, at or below when minimizing.
func ByFitnessThreshold[G any](threshold float64, minimize bool) Limit[G] {
	return func(r model.EvolutionResult[G]) bool {
		best, ok := r.BestFitness()
		if !ok {
			return true
		}
		if minimize {
			return best > threshold
		}
		return best < threshold
	}
}

// BySteadyFitness stops after the given number of consecutive generations
// without improvement of the best fitness. Panics for spans below one.
func BySteadyFitness[G any](generations int, minimize bool) Limit[G] {
	if generations < 1 {
		panic(fmt.Sprintf("evo: steady-fitness span must be at least one: %d", generations))
	}
	var best float64
	seen := false
	stable := 0
	return func(r model.EvolutionResult[G]) bool {
		f, ok := r.BestFitness()
		if !ok {
			return true
		}
		improved := !seen || (minimize && f < best) || (!minimize && f > best)
		if improved {
			best = f
			seen = true
			stable = 0
			return true
		}
		stable++
		return stable < generations
	}
}

// ByDuration stops once the wall-clock budget, measured from the first
// emitted result, is exhausted. Panics for non-positive budgets.
func ByDuration[G any](budget time.Duration) Limit[G] {
	if budget <= 0 {
		panic(fmt.Sprintf("evo: duration budget must be positive: %v", budget))
	}
	var deadline time.Time
	return func(model.EvolutionResult[G]) bool {
		if deadline.IsZero() {
			deadline = time.Now().Add(budget)
			return true
		}
		return time.Now().Before(deadline)
	}
}

// ByPredicate adapts an arbitrary convergence predicate: the stream
// continues while the predicate holds.
func ByPredicate[G any](keepGoing func(model.EvolutionResult[G]) bool) Limit[G] {
	if keepGoing == nil {
		panic("evo: predicate is required")
	}
	return Limit[G](keepGoing)
}
