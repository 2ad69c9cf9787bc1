package model

import (
	"testing"

	"panmixia/internal/seq"
)

func TestGenotypeGeneCount(t *testing.T) {
	g := NewGenotype(
		ChromosomeOf(true, false, true),
		ChromosomeOf(false, false),
	)
	if g.Len() != 2 {
		t.Fatalf("chromosome count = %d, want 2", g.Len())
	}
	if g.GeneCount() != 5 {
		t.Fatalf("gene count = %d, want 5", g.GeneCount())
	}
	if got := g.Chromosome(0).Gene(2); got != true {
		t.Fatalf("gene(0,2) = %v, want true", got)
	}
}

func TestPhenotypeFitnessCaching(t *testing.T) {
	p := NewPhenotype(NewGenotype(ChromosomeOf(1, 2, 3)), 4)

	if _, ok := p.Fitness(); ok {
		t.Fatal("fresh phenotype reports a fitness")
	}
	if p.Generation() != 4 {
		t.Fatalf("generation = %d, want 4", p.Generation())
	}
	if p.Age(10) != 6 {
		t.Fatalf("age = %d, want 6", p.Age(10))
	}

	evaluated := p.WithFitness(0.75)
	if f, ok := evaluated.Fitness(); !ok || f != 0.75 {
		t.Fatalf("fitness = (%v, %v), want (0.75, true)", f, ok)
	}
	if _, ok := p.Fitness(); ok {
		t.Fatal("WithFitness mutated the receiver")
	}

	// The cached value is authoritative.
	again := evaluated.WithFitness(99)
	if f, _ := again.Fitness(); f != 0.75 {
		t.Fatalf("re-evaluation overwrote cached fitness: %v", f)
	}
}

func TestEvolutionResultNextIsPureProjection(t *testing.T) {
	pop := seq.Of(
		NewPhenotype(NewGenotype(ChromosomeOf(1)), 3).WithFitness(1),
		NewPhenotype(NewGenotype(ChromosomeOf(2)), 3).WithFitness(2),
	)
	result := EvolutionResult[int]{Population: pop, Generation: 3}

	next := result.Next()
	if next.Generation != 4 {
		t.Fatalf("next generation = %d, want 4", next.Generation)
	}
	if next.Population.Len() != pop.Len() {
		t.Fatalf("next population size = %d, want %d", next.Population.Len(), pop.Len())
	}
	if again := result.Next(); again.Generation != 4 {
		t.Fatalf("Next is not pure: second call gave generation %d", again.Generation)
	}
}

func TestBestFitness(t *testing.T) {
	var r EvolutionResult[int]
	if _, ok := r.BestFitness(); ok {
		t.Fatal("empty result reports a best fitness")
	}

	best := NewPhenotype(NewGenotype(ChromosomeOf(1)), 0).WithFitness(7)
	r.Best = &best
	if f, ok := r.BestFitness(); !ok || f != 7 {
		t.Fatalf("best fitness = (%v, %v), want (7, true)", f, ok)
	}
}
