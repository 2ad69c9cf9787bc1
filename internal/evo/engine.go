package evo

import (
	"fmt"
	"math/rand"

	"panmixia/internal/model"
	"panmixia/internal/random"
	"panmixia/internal/seq"
)

const (
	defaultOffspringFraction = 0.6
	defaultMaxPhenotypeAge   = 70
)

// Config enumerates the collaborators of an engine. Required collaborators
// are checked eagerly in New, never lazily mid-evolution.
type Config[G any] struct {
	// Fitness scores a genotype. It must be a pure function of the
	// genotype; the engine calls it at most once per phenotype and caches
	// the result.
	Fitness func(model.Genotype[G]) float64

	// Validity rejects genotypes that must not enter the next generation.
	// Rejected individuals are replaced and counted, never treated as
	// errors. Defaults to accepting everything.
	Validity func(model.Genotype[G]) bool

	// Factory supplies fresh genotypes for the initial population and for
	// replacements of invalid or over-age individuals.
	Factory func(rng *rand.Rand) model.Genotype[G]

	PopulationSize int

	// OffspringFraction is the share of the population selected as
	// offspring parents; the rest are survivor candidates. Defaults to 0.6.
	OffspringFraction float64

	// OffspringSelector defaults to TournamentSelector, SurvivorSelector
	// to TruncationSelector.
	OffspringSelector Selector[G]
	SurvivorSelector  Selector[G]

	Alterers []Alterer[G]

	// MaxPhenotypeAge kills survivors older than this many generations.
	// Defaults to 70.
	MaxPhenotypeAge int

	// Minimize inverts the optimization direction; the default maximizes.
	Minimize bool

	// Workers bounds the parallelism of fitness evaluation. Defaults to 1.
	Workers int

	// Rand is the random source for selection, alteration and the factory.
	// Defaults to the process-bound source.
	Rand *rand.Rand
}

// Engine applies one generation step: selection, alteration, evaluation,
// replacement. It is the referentially stable function behind the
// evolution stream.
type Engine[G any] struct {
	cfg Config[G]
}

// New validates the configuration and fills in defaults.
func New[G any](cfg Config[G]) (*Engine[G], error) {
	if cfg.Fitness == nil {
		return nil, fmt.Errorf("fitness function is required")
	}
	if cfg.Factory == nil {
		return nil, fmt.Errorf("genotype factory is required")
	}
	if cfg.PopulationSize <= 0 {
		return nil, fmt.Errorf("population size must be > 0: %d", cfg.PopulationSize)
	}
	if cfg.OffspringFraction < 0 || cfg.OffspringFraction > 1 {
		return nil, fmt.Errorf("offspring fraction %v outside [0, 1]", cfg.OffspringFraction)
	}
	for i, alterer := range cfg.Alterers {
		if alterer == nil {
			return nil, fmt.Errorf("alterer %d is nil", i)
		}
	}

	if cfg.Validity == nil {
		cfg.Validity = func(model.Genotype[G]) bool { return true }
	}
	if cfg.OffspringFraction == 0 {
		cfg.OffspringFraction = defaultOffspringFraction
	}
	if cfg.OffspringSelector == nil {
		cfg.OffspringSelector = TournamentSelector[G]{}
	}
	if cfg.SurvivorSelector == nil {
		cfg.SurvivorSelector = TruncationSelector[G]{}
	}
	if cfg.MaxPhenotypeAge <= 0 {
		cfg.MaxPhenotypeAge = defaultMaxPhenotypeAge
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Rand == nil {
		cfg.Rand = random.Default()
	}

	return &Engine[G]{cfg: cfg}, nil
}

// compare orders phenotypes by fitness under the configured direction; an
// evaluated phenotype always beats an unevaluated one.
func (e *Engine[G]) compare(a, b model.Phenotype[G]) int {
	fa, oka := a.Fitness()
	fb, okb := b.Fitness()
	if !oka || !okb {
		switch {
		case oka:
			return 1
		case okb:
			return -1
		default:
			return 0
		}
	}

	var c int
	switch {
	case fa < fb:
		c = -1
	case fa > fb:
		c = 1
	}
	if e.cfg.Minimize {
		c = -c
	}
	return c
}

// initialStart materializes generation one from the genotype factory.
func (e *Engine[G]) initialStart(rng *rand.Rand) model.EvolutionStart[G] {
	pop := seq.Generate(e.cfg.PopulationSize, func(int) model.Phenotype[G] {
		return model.NewPhenotype(e.cfg.Factory(rng), 1)
	})
	return model.EvolutionStart[G]{Population: pop, Generation: 1}
}
