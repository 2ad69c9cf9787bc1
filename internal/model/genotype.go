// Package model holds the immutable value types threaded through one
// generation of evolution: genotypes, phenotypes, populations, and the
// start/result pair produced by the generation step.
package model

import (
	"panmixia/internal/seq"
)

// Chromosome is an immutable ordered run of genes.
type Chromosome[G any] struct {
	genes seq.ISeq[G]
}

func NewChromosome[G any](genes seq.ISeq[G]) Chromosome[G] {
	return Chromosome[G]{genes: genes}
}

func ChromosomeOf[G any](genes ...G) Chromosome[G] {
	return Chromosome[G]{genes: seq.Of(genes...)}
}

func (c Chromosome[G]) Genes() seq.ISeq[G] {
	return c.genes
}

func (c Chromosome[G]) Len() int {
	return c.genes.Len()
}

func (c Chromosome[G]) Gene(i int) G {
	return c.genes.Get(i)
}

// Genotype is an immutable ordered sequence of chromosomes encoding one
// candidate solution.
type Genotype[G any] struct {
	chromosomes seq.ISeq[Chromosome[G]]
}

func NewGenotype[G any](chromosomes ...Chromosome[G]) Genotype[G] {
	return Genotype[G]{chromosomes: seq.Of(chromosomes...)}
}

func GenotypeFromSeq[G any](chromosomes seq.ISeq[Chromosome[G]]) Genotype[G] {
	return Genotype[G]{chromosomes: chromosomes}
}

func (g Genotype[G]) Chromosomes() seq.ISeq[Chromosome[G]] {
	return g.chromosomes
}

func (g Genotype[G]) Chromosome(i int) Chromosome[G] {
	return g.chromosomes.Get(i)
}

func (g Genotype[G]) Len() int {
	return g.chromosomes.Len()
}

// GeneCount is the total number of genes across all chromosomes.
func (g Genotype[G]) GeneCount() int {
	count := 0
	for c := range g.chromosomes.Values() {
		count += c.Len()
	}
	return count
}
