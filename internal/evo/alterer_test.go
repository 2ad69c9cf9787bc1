package evo

import (
	"math/rand"
	"testing"

	"panmixia/internal/model"
)

func TestMutatorMutatesEveryGeneAtProbabilityOne(t *testing.T) {
	rng := rand.New(rand.NewSource(19))
	m, err := NewMutator(1.0, func(_ *rand.Rand, g int) int { return g + 100 })
	if err != nil {
		t.Fatalf("NewMutator: %v", err)
	}

	pop := intPopulation(intPhenotype(1, 0.5), intPhenotype(2, 0.7))
	altered, count, err := m.Alter(rng, pop, 6)
	if err != nil {
		t.Fatalf("alter: %v", err)
	}

	if count != 2 {
		t.Fatalf("alteration count = %d, want 2", count)
	}
	for i := 0; i < altered.Len(); i++ {
		ph := altered.Get(i)
		if ph.IsEvaluated() {
			t.Fatal("mutated phenotype kept its cached fitness")
		}
		if ph.Generation() != 6 {
			t.Fatalf("mutated phenotype born in generation %d, want 6", ph.Generation())
		}
		if got := phenotypeID(ph); got != phenotypeID(pop.Get(i))+100 {
			t.Fatalf("gene %d not mutated: %d", i, got)
		}
	}

	// The source population is untouched.
	if phenotypeID(pop.Get(0)) != 1 || !pop.Get(0).IsEvaluated() {
		t.Fatal("source population mutated")
	}
}

func TestMutatorProbabilityZeroIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(19))
	m, err := NewMutator(0, func(_ *rand.Rand, g int) int { return g + 100 })
	if err != nil {
		t.Fatalf("NewMutator: %v", err)
	}

	pop := intPopulation(intPhenotype(1, 0.5))
	altered, count, err := m.Alter(rng, pop, 2)
	if err != nil {
		t.Fatalf("alter: %v", err)
	}
	if count != 0 {
		t.Fatalf("alteration count = %d, want 0", count)
	}
	if !altered.Get(0).IsEvaluated() {
		t.Fatal("untouched phenotype lost its cached fitness")
	}
}

func TestMutatorValidation(t *testing.T) {
	if _, err := NewMutator(1.5, func(_ *rand.Rand, g int) int { return g }); err == nil {
		t.Fatal("probability above one accepted")
	}
	if _, err := NewMutator[int](0.5, nil); err == nil {
		t.Fatal("nil gene function accepted")
	}
}

func bitsPhenotype(generation int, bits ...int) model.Phenotype[int] {
	return model.NewPhenotype(model.NewGenotype(model.ChromosomeOf(bits...)), generation).WithFitness(0)
}

func TestSinglePointCrossoverExchangesTails(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	c, err := NewSinglePointCrossover[int](1.0)
	if err != nil {
		t.Fatalf("NewSinglePointCrossover: %v", err)
	}

	a := bitsPhenotype(1, 0, 0, 0, 0, 0, 0)
	b := bitsPhenotype(1, 1, 1, 1, 1, 1, 1)
	altered, count, err := c.Alter(rng, intPopulation(a, b), 3)
	if err != nil {
		t.Fatalf("alter: %v", err)
	}
	if count != 2 {
		t.Fatalf("alteration count = %d, want 2", count)
	}

	ga := altered.Get(0).Genotype().Chromosome(0)
	gb := altered.Get(1).Genotype().Chromosome(0)
	crossed := false
	for i := 0; i < ga.Len(); i++ {
		if ga.Gene(i)+gb.Gene(i) != 1 {
			t.Fatalf("position %d lost its gene pair: %d/%d", i, ga.Gene(i), gb.Gene(i))
		}
		if ga.Gene(i) == 1 {
			crossed = true
		}
	}
	if !crossed {
		t.Fatal("no genes were exchanged")
	}
	for i := 0; i < altered.Len(); i++ {
		if altered.Get(i).IsEvaluated() {
			t.Fatal("crossed phenotype kept its cached fitness")
		}
		if altered.Get(i).Generation() != 3 {
			t.Fatalf("crossed phenotype born in generation %d, want 3", altered.Get(i).Generation())
		}
	}
}

func TestSinglePointCrossoverProbabilityZeroIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	c, err := NewSinglePointCrossover[int](0)
	if err != nil {
		t.Fatalf("NewSinglePointCrossover: %v", err)
	}

	pop := intPopulation(bitsPhenotype(1, 0, 0), bitsPhenotype(1, 1, 1))
	altered, count, err := c.Alter(rng, pop, 2)
	if err != nil {
		t.Fatalf("alter: %v", err)
	}
	if count != 0 {
		t.Fatalf("alteration count = %d, want 0", count)
	}
	if !altered.Get(0).IsEvaluated() {
		t.Fatal("untouched phenotype lost its cached fitness")
	}
}

func TestSinglePointCrossoverTinyPopulations(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	c, err := NewSinglePointCrossover[int](1.0)
	if err != nil {
		t.Fatalf("NewSinglePointCrossover: %v", err)
	}

	single := intPopulation(bitsPhenotype(1, 0, 1))
	altered, count, err := c.Alter(rng, single, 2)
	if err != nil {
		t.Fatalf("alter: %v", err)
	}
	if count != 0 || altered.Len() != 1 {
		t.Fatalf("single-individual population altered: count=%d len=%d", count, altered.Len())
	}
}

func TestSinglePointCrossoverValidation(t *testing.T) {
	if _, err := NewSinglePointCrossover[int](-0.5); err == nil {
		t.Fatal("negative probability accepted")
	}
	if _, err := NewSinglePointCrossover[int](2); err == nil {
		t.Fatal("probability above one accepted")
	}
}
