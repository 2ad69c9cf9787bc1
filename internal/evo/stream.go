package evo

import (
	"context"
	"math/rand"

	"panmixia/internal/model"
)

// Stream is the pull-based producer of generation results. The first pull
// materializes the initial start; every later pull applies the generation
// step to the previous result's derived start. The sequence is logically
// infinite and strictly sequential: generation g+1 cannot begin before
// generation g's result exists, so no splitting operation is provided at
// all. Termination is the caller's concern, layered on top via Limit.
//
// A failed pull does not advance the stream, so pulling is idempotent per
// element. A Stream is not safe for concurrent use.
type Stream[G any] struct {
	engine  *Engine[G]
	initial func(rng *rand.Rand) model.EvolutionStart[G]
	start   *model.EvolutionStart[G]
	best    *model.Phenotype[G]
}

// Stream creates a stream seeded from the engine's genotype factory.
func (e *Engine[G]) Stream() *Stream[G] {
	return e.StreamFrom(e.initialStart)
}

// StreamFrom creates a stream seeded by the given start supplier. The
// supplier runs lazily on the first pull. Each call creates an independent
// subscription that restarts from the supplier.
func (e *Engine[G]) StreamFrom(initial func(rng *rand.Rand) model.EvolutionStart[G]) *Stream[G] {
	if initial == nil {
		panic("evo: start supplier is required")
	}
	return &Stream[G]{engine: e, initial: initial}
}

// Next performs one generation step and returns its result. The emitted
// result's Best field tracks the best phenotype seen over the whole stream,
// not just the produced generation.
func (s *Stream[G]) Next(ctx context.Context) (model.EvolutionResult[G], error) {
	if s.start == nil {
		st := s.initial(s.engine.cfg.Rand)
		s.start = &st
	}

	result, err := s.engine.Step(ctx, *s.start)
	if err != nil {
		return model.EvolutionResult[G]{}, err
	}

	if result.Best != nil {
		if s.best == nil || s.engine.compare(*result.Best, *s.best) > 0 {
			s.best = result.Best
		} else {
			result.Best = s.best
		}
	}

	next := result.Next()
	s.start = &next
	return result, nil
}

// Run pulls the stream until the limit predicate reports the sequence is
// done, returning every emitted result.
func (s *Stream[G]) Run(ctx context.Context, limit Limit[G]) ([]model.EvolutionResult[G], error) {
	if limit == nil {
		panic("evo: limit is required")
	}
	var results []model.EvolutionResult[G]
	for {
		result, err := s.Next(ctx)
		if err != nil {
			return results, err
		}
		results = append(results, result)
		if !limit(result) {
			return results, nil
		}
	}
}
