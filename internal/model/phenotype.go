package model

import (
	"fmt"

	"panmixia/internal/seq"
)

// Phenotype pairs a genotype with its cached fitness and the generation it
// was created in. A phenotype is immutable; the fitness of an evaluated
// phenotype is authoritative and never recomputed.
type Phenotype[G any] struct {
	genotype   Genotype[G]
	generation int
	fitness    float64
	evaluated  bool
}

// NewPhenotype creates an unevaluated phenotype born in the given generation.
func NewPhenotype[G any](genotype Genotype[G], generation int) Phenotype[G] {
	return Phenotype[G]{genotype: genotype, generation: generation}
}

func (p Phenotype[G]) Genotype() Genotype[G] {
	return p.genotype
}

// Generation is the generation the phenotype was created in.
func (p Phenotype[G]) Generation() int {
	return p.generation
}

// Age is the number of generations the phenotype has survived, relative to
// the given current generation.
func (p Phenotype[G]) Age(current int) int {
	return current - p.generation
}

// Fitness returns the cached fitness value and whether one is present.
func (p Phenotype[G]) Fitness() (float64, bool) {
	return p.fitness, p.evaluated
}

func (p Phenotype[G]) IsEvaluated() bool {
	return p.evaluated
}

// WithFitness returns an evaluated copy carrying the given fitness. If the
// phenotype is already evaluated the receiver is returned unchanged: the
// cached value wins.
func (p Phenotype[G]) WithFitness(fitness float64) Phenotype[G] {
	if p.evaluated {
		return p
	}
	p.fitness = fitness
	p.evaluated = true
	return p
}

func (p Phenotype[G]) String() string {
	if !p.evaluated {
		return fmt.Sprintf("Phenotype[gen=%d, fitness=?]", p.generation)
	}
	return fmt.Sprintf("Phenotype[gen=%d, fitness=%g]", p.generation, p.fitness)
}

// Population is a fixed-size ordered collection of phenotypes for one
// generation. Order carries no semantic meaning beyond stable iteration.
type Population[G any] = seq.ISeq[Phenotype[G]]
