package evo

import (
	"panmixia/internal/model"
	"panmixia/internal/seq"
)

// intPhenotype builds an evaluated phenotype whose single gene doubles as
// its identity in frequency-counting tests.
func intPhenotype(id int, fitness float64) model.Phenotype[int] {
	gt := model.NewGenotype(model.ChromosomeOf(id))
	return model.NewPhenotype(gt, 1).WithFitness(fitness)
}

func phenotypeID(p model.Phenotype[int]) int {
	return p.Genotype().Chromosome(0).Gene(0)
}

func intPopulation(phs ...model.Phenotype[int]) model.Population[int] {
	return seq.Of(phs...)
}

// maximize is the comparator of a maximizing engine over evaluated
// phenotypes.
func maximize(a, b model.Phenotype[int]) int {
	fa, oka := a.Fitness()
	fb, okb := b.Fitness()
	switch {
	case !oka && !okb:
		return 0
	case !oka:
		return -1
	case !okb:
		return 1
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	default:
		return 0
	}
}
