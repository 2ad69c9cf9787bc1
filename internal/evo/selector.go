// Package evo implements the evolution engine: selector and alterer
// strategies, the generation step function, and the lazily produced
// evolution stream.
package evo

import (
	"fmt"
	"math/rand"

	"panmixia/internal/model"
	"panmixia/internal/seq"
)

// Compare orders two phenotypes by fitness under the engine's optimization
// direction: a positive result means a is the better individual.
type Compare[G any] func(a, b model.Phenotype[G]) int

// Selector chooses count individuals from a scored population. Selection
// may sample with replacement, so count may exceed the population size.
type Selector[G any] interface {
	Name() string
	Select(rng *rand.Rand, pop model.Population[G], count int, cmp Compare[G]) (model.Population[G], error)
}

func checkSelectArgs[G any](rng *rand.Rand, pop model.Population[G], count int, cmp Compare[G]) error {
	if rng == nil {
		return fmt.Errorf("random source is required")
	}
	if cmp == nil {
		return fmt.Errorf("phenotype comparator is required")
	}
	if count < 0 {
		return fmt.Errorf("selection count must be >= 0: %d", count)
	}
	if count > 0 && pop.Len() == 0 {
		return fmt.Errorf("cannot select %d individuals from an empty population", count)
	}
	return nil
}

// fitnessValues extracts the cached fitness of every phenotype; selection
// only ever runs on fully evaluated populations.
func fitnessValues[G any](pop model.Population[G]) ([]float64, error) {
	values := make([]float64, pop.Len())
	for i := 0; i < pop.Len(); i++ {
		f, ok := pop.Get(i).Fitness()
		if !ok {
			return nil, fmt.Errorf("phenotype %d has no evaluated fitness", i)
		}
		values[i] = f
	}
	return values, nil
}

// StochasticUniversalSelector is a low-variance fitness-proportional
// selector: count equally spaced pointers are placed over the cumulative
// fitness of the population ordered by the selection comparator, with a
// single random offset. Expected selection frequency is proportional to
// fitness. Negative fitness contributions are clamped to zero; a zero
// total degenerates to uniform selection (every interval weight one).
type StochasticUniversalSelector[G any] struct{}

func (StochasticUniversalSelector[G]) Name() string {
	return "stochastic_universal"
}

func (StochasticUniversalSelector[G]) Select(
	rng *rand.Rand,
	pop model.Population[G],
	count int,
	cmp Compare[G],
) (model.Population[G], error) {
	if err := checkSelectArgs(rng, pop, count, cmp); err != nil {
		return model.Population[G]{}, err
	}
	if count == 0 {
		return model.Population[G]{}, nil
	}

	// Worst-to-best order under the selection comparator; the source
	// population is left untouched.
	perm := seq.SortSeq(pop, func(a, b model.Phenotype[G]) int { return cmp(a, b) })

	values, err := fitnessValues(pop)
	if err != nil {
		return model.Population[G]{}, err
	}

	weights := make([]float64, len(perm))
	total := 0.0
	for i, p := range perm {
		w := values[p]
		if w < 0 {
			w = 0
		}
		weights[i] = w
		total += w
	}
	if total <= 0 {
		// Degenerate case: all intervals get equal weight, making every
		// individual equally likely.
		for i := range weights {
			weights[i] = 1
		}
		total = float64(len(weights))
	}

	step := total / float64(count)
	offset := rng.Float64() * step

	out := seq.NewMSeq[model.Phenotype[G]](count)
	idx := 0
	cum := weights[0]
	for i := 0; i < count; i++ {
		pointer := offset + float64(i)*step
		for cum < pointer && idx < len(weights)-1 {
			idx++
			cum += weights[idx]
		}
		out.Set(i, pop.Get(perm[idx]))
	}
	return out.ToISeq(), nil
}

// TournamentSelector samples a tournament of Size individuals for every
// slot and keeps the best. Size defaults to 3.
type TournamentSelector[G any] struct {
	Size int
}

func (TournamentSelector[G]) Name() string {
	return "tournament"
}

func (s TournamentSelector[G]) Select(
	rng *rand.Rand,
	pop model.Population[G],
	count int,
	cmp Compare[G],
) (model.Population[G], error) {
	if err := checkSelectArgs(rng, pop, count, cmp); err != nil {
		return model.Population[G]{}, err
	}
	if count == 0 {
		return model.Population[G]{}, nil
	}

	size := s.Size
	if size <= 0 {
		size = 3
	}
	if size > pop.Len() {
		size = pop.Len()
	}

	out := seq.NewMSeq[model.Phenotype[G]](count)
	for i := 0; i < count; i++ {
		best := pop.Get(rng.Intn(pop.Len()))
		for k := 1; k < size; k++ {
			candidate := pop.Get(rng.Intn(pop.Len()))
			if cmp(candidate, best) > 0 {
				best = candidate
			}
		}
		out.Set(i, best)
	}
	return out.ToISeq(), nil
}

// TruncationSelector deterministically takes the best count individuals,
// cycling through the ranking when count exceeds the population size.
type TruncationSelector[G any] struct{}

func (TruncationSelector[G]) Name() string {
	return "truncation"
}

func (TruncationSelector[G]) Select(
	rng *rand.Rand,
	pop model.Population[G],
	count int,
	cmp Compare[G],
) (model.Population[G], error) {
	if err := checkSelectArgs(rng, pop, count, cmp); err != nil {
		return model.Population[G]{}, err
	}
	if count == 0 {
		return model.Population[G]{}, nil
	}

	// Best-first permutation of the untouched source.
	perm := seq.SortSeq(pop, func(a, b model.Phenotype[G]) int { return cmp(b, a) })

	out := seq.NewMSeq[model.Phenotype[G]](count)
	for i := 0; i < count; i++ {
		out.Set(i, pop.Get(perm[i%len(perm)]))
	}
	return out.ToISeq(), nil
}
