package model

import (
	"time"
)

// EvolutionStart is the input to one generation step: the population to
// evolve and the generation number about to be produced.
type EvolutionStart[G any] struct {
	Population Population[G]
	Generation int
}

// EvolutionResult is the outcome of one generation step. It is immutable;
// Next is a pure projection deriving the start of the following generation.
type EvolutionResult[G any] struct {
	Population Population[G]
	Generation int

	// Observability counts. Invalid phenotypes are replaced, not dropped;
	// killed phenotypes exceeded the configured age limit.
	InvalidCount int
	AlterCount   int
	KillCount    int

	Duration time.Duration

	// Best phenotype observed so far, nil until the first evaluated
	// phenotype exists.
	Best *Phenotype[G]
}

// Next derives the start of the following generation.
func (r EvolutionResult[G]) Next() EvolutionStart[G] {
	return EvolutionStart[G]{
		Population: r.Population,
		Generation: r.Generation + 1,
	}
}

// BestFitness returns the fitness of the best phenotype, if any.
func (r EvolutionResult[G]) BestFitness() (float64, bool) {
	if r.Best == nil {
		return 0, false
	}
	return r.Best.Fitness()
}
