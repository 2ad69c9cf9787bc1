package evo

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"panmixia/internal/model"
	"panmixia/internal/seq"
)

// Step maps one generation's start to its result: selection, alteration,
// evaluation, replacement. The input is never mutated; the result carries
// the derived start of the next generation.
func (e *Engine[G]) Step(ctx context.Context, start model.EvolutionStart[G]) (model.EvolutionResult[G], error) {
	began := time.Now()

	if start.Population.Len() == 0 {
		return model.EvolutionResult[G]{}, fmt.Errorf("start population is empty")
	}

	rng := e.cfg.Rand
	gen := start.Generation
	n := e.cfg.PopulationSize

	// The very first start may arrive unevaluated.
	pop, err := e.evaluate(ctx, start.Population)
	if err != nil {
		return model.EvolutionResult[G]{}, err
	}

	offspringCount := int(math.Round(e.cfg.OffspringFraction * float64(n)))
	survivorCount := n - offspringCount

	offspring, err := e.cfg.OffspringSelector.Select(rng, pop, offspringCount, e.compare)
	if err != nil {
		return model.EvolutionResult[G]{}, fmt.Errorf("offspring selection: %w", err)
	}
	survivors, err := e.cfg.SurvivorSelector.Select(rng, pop, survivorCount, e.compare)
	if err != nil {
		return model.EvolutionResult[G]{}, fmt.Errorf("survivor selection: %w", err)
	}

	alterCount := 0
	for _, alterer := range e.cfg.Alterers {
		var altered int
		offspring, altered, err = alterer.Alter(rng, offspring, gen)
		if err != nil {
			return model.EvolutionResult[G]{}, fmt.Errorf("alterer %s: %w", alterer.Name(), err)
		}
		alterCount += altered
	}

	invalidCount, killCount := 0, 0
	merged := seq.NewMSeq[model.Phenotype[G]](survivors.Len() + offspring.Len())
	for i := 0; i < survivors.Len(); i++ {
		ph := survivors.Get(i)
		switch {
		case !e.cfg.Validity(ph.Genotype()):
			invalidCount++
			ph = model.NewPhenotype(e.cfg.Factory(rng), gen)
		case ph.Age(gen) > e.cfg.MaxPhenotypeAge:
			killCount++
			ph = model.NewPhenotype(e.cfg.Factory(rng), gen)
		}
		merged.Set(i, ph)
	}
	for i := 0; i < offspring.Len(); i++ {
		ph := offspring.Get(i)
		if !e.cfg.Validity(ph.Genotype()) {
			invalidCount++
			ph = model.NewPhenotype(e.cfg.Factory(rng), gen)
		}
		merged.Set(survivors.Len()+i, ph)
	}

	next, err := e.evaluate(ctx, merged.ToISeq())
	if err != nil {
		return model.EvolutionResult[G]{}, err
	}

	best := next.Get(0)
	for i := 1; i < next.Len(); i++ {
		if e.compare(next.Get(i), best) > 0 {
			best = next.Get(i)
		}
	}

	return model.EvolutionResult[G]{
		Population:   next,
		Generation:   gen,
		InvalidCount: invalidCount,
		AlterCount:   alterCount,
		KillCount:    killCount,
		Duration:     time.Since(began),
		Best:         &best,
	}, nil
}

// evaluate computes fitness for every phenotype lacking a cached value.
// Evaluations are independent and order-insensitive, so they are fanned out
// across the configured workers; the join below is the barrier before
// replacement proceeds. Already-evaluated phenotypes pass through without a
// fitness call.
func (e *Engine[G]) evaluate(ctx context.Context, pop model.Population[G]) (model.Population[G], error) {
	out := make([]model.Phenotype[G], pop.Len())
	pending := 0
	for i := 0; i < pop.Len(); i++ {
		ph := pop.Get(i)
		out[i] = ph
		if !ph.IsEvaluated() {
			pending++
		}
	}
	if pending == 0 {
		return pop, nil
	}

	type job struct {
		idx int
		ph  model.Phenotype[G]
	}
	type result struct {
		idx int
		ph  model.Phenotype[G]
		err error
	}

	jobs := make(chan job)
	results := make(chan result, pending)

	workerCount := e.cfg.Workers
	if workerCount > pending {
		workerCount = pending
	}

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					results <- result{idx: j.idx, err: err}
					continue
				}
				fitness := e.cfg.Fitness(j.ph.Genotype())
				results <- result{idx: j.idx, ph: j.ph.WithFitness(fitness)}
			}
		}()
	}

	for i := range out {
		if !out[i].IsEvaluated() {
			jobs <- job{idx: i, ph: out[i]}
		}
	}
	close(jobs)

	wg.Wait()
	close(results)

	for res := range results {
		if res.err != nil {
			return model.Population[G]{}, res.err
		}
		out[res.idx] = res.ph
	}
	return seq.FromSlice(out), nil
}
