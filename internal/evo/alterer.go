package evo

import (
	"fmt"
	"math"
	"math/rand"

	"panmixia/internal/model"
	"panmixia/internal/seq"
)

// Alterer produces a changed population from an existing one, reporting how
// many alterations it performed. Altered phenotypes are reborn in the given
// generation with no cached fitness.
type Alterer[G any] interface {
	Name() string
	Alter(rng *rand.Rand, pop model.Population[G], generation int) (model.Population[G], int, error)
}

// Mutator flips individual genes with a per-gene probability, using a
// user-supplied gene mutation function. The alteration count is the number
// of genes mutated.
type Mutator[G any] struct {
	probability float64
	mutate      func(rng *rand.Rand, gene G) G
}

// NewMutator validates the mutation probability and gene function eagerly.
func NewMutator[G any](probability float64, mutate func(rng *rand.Rand, gene G) G) (*Mutator[G], error) {
	if probability < 0 || probability > 1 {
		return nil, fmt.Errorf("mutation probability %v outside [0, 1]", probability)
	}
	if mutate == nil {
		return nil, fmt.Errorf("gene mutation function is required")
	}
	return &Mutator[G]{probability: probability, mutate: mutate}, nil
}

func (*Mutator[G]) Name() string {
	return "mutator"
}

func (m *Mutator[G]) Alter(
	rng *rand.Rand,
	pop model.Population[G],
	generation int,
) (model.Population[G], int, error) {
	if rng == nil {
		return model.Population[G]{}, 0, fmt.Errorf("random source is required")
	}

	mutated := 0
	out := seq.NewMSeq[model.Phenotype[G]](pop.Len())
	for i := 0; i < pop.Len(); i++ {
		ph := pop.Get(i)
		genotype, n := m.mutateGenotype(rng, ph.Genotype())
		if n == 0 {
			out.Set(i, ph)
			continue
		}
		mutated += n
		out.Set(i, model.NewPhenotype(genotype, generation))
	}
	return out.ToISeq(), mutated, nil
}

func (m *Mutator[G]) mutateGenotype(rng *rand.Rand, gt model.Genotype[G]) (model.Genotype[G], int) {
	mutated := 0
	chromosomes := seq.NewMSeq[model.Chromosome[G]](gt.Len())
	for c := 0; c < gt.Len(); c++ {
		chromosome := gt.Chromosome(c)
		var genes seq.MSeq[G]
		changed := 0
		for i := 0; i < chromosome.Len(); i++ {
			if rng.Float64() >= m.probability {
				continue
			}
			if changed == 0 {
				genes = chromosome.Genes().Copy()
			}
			genes.Set(i, m.mutate(rng, genes.Get(i)))
			changed++
		}
		if changed == 0 {
			chromosomes.Set(c, chromosome)
		} else {
			chromosomes.Set(c, model.NewChromosome(genes.ToISeq()))
			mutated += changed
		}
	}
	if mutated == 0 {
		return gt, 0
	}
	return model.GenotypeFromSeq(chromosomes.ToISeq()), mutated
}

// SinglePointCrossover recombines pairs of individuals by exchanging the
// gene tails of matching chromosomes past a random cut point. The number
// of pairs crossed is round(probability * |pop| / 2); the alteration count
// is the number of individuals touched.
type SinglePointCrossover[G any] struct {
	probability float64
}

func NewSinglePointCrossover[G any](probability float64) (*SinglePointCrossover[G], error) {
	if probability < 0 || probability > 1 {
		return nil, fmt.Errorf("crossover probability %v outside [0, 1]", probability)
	}
	return &SinglePointCrossover[G]{probability: probability}, nil
}

func (*SinglePointCrossover[G]) Name() string {
	return "single_point_crossover"
}

func (c *SinglePointCrossover[G]) Alter(
	rng *rand.Rand,
	pop model.Population[G],
	generation int,
) (model.Population[G], int, error) {
	if rng == nil {
		return model.Population[G]{}, 0, fmt.Errorf("random source is required")
	}
	if pop.Len() < 2 {
		return pop, 0, nil
	}

	pairs := int(math.Round(c.probability * float64(pop.Len()) / 2))
	if pairs == 0 {
		return pop, 0, nil
	}

	out := pop.Copy()
	altered := 0
	for k := 0; k < pairs; k++ {
		i := rng.Intn(out.Len())
		j := rng.Intn(out.Len() - 1)
		if j >= i {
			j++
		}

		a, b, crossed := c.cross(rng, out.Get(i).Genotype(), out.Get(j).Genotype())
		if !crossed {
			continue
		}
		out.Set(i, model.NewPhenotype(a, generation))
		out.Set(j, model.NewPhenotype(b, generation))
		altered += 2
	}
	return out.ToISeq(), altered, nil
}

func (c *SinglePointCrossover[G]) cross(
	rng *rand.Rand,
	a, b model.Genotype[G],
) (model.Genotype[G], model.Genotype[G], bool) {
	chromosomes := a.Len()
	if b.Len() < chromosomes {
		chromosomes = b.Len()
	}
	if chromosomes == 0 {
		return a, b, false
	}

	idx := rng.Intn(chromosomes)
	genesA := a.Chromosome(idx).Genes().Copy()
	genesB := b.Chromosome(idx).Genes().Copy()

	length := genesA.Len()
	if genesB.Len() < length {
		length = genesB.Len()
	}
	if length < 2 {
		return a, b, false
	}

	cut := 1 + rng.Intn(length-1)
	genesA.SwapRange(cut, length, genesB, cut)

	return replaceChromosome(a, idx, genesA.ToISeq()),
		replaceChromosome(b, idx, genesB.ToISeq()),
		true
}

func replaceChromosome[G any](gt model.Genotype[G], idx int, genes seq.ISeq[G]) model.Genotype[G] {
	chromosomes := gt.Chromosomes().Copy()
	chromosomes.Set(idx, model.NewChromosome(genes))
	return model.GenotypeFromSeq(chromosomes.ToISeq())
}
