package ga

import (
	"fmt"

	"evosim/internal/rng"
)

// GeneticAlgorithm breeds one generation from the previous one using
// pluggable selection, crossover and mutation strategies.
type GeneticAlgorithm[I Individual] struct {
	selection SelectionMethod
	crossover CrossoverMethod
	mutation  MutationMethod
}

func New[I Individual](selection SelectionMethod, crossover CrossoverMethod, mutation MutationMethod) *GeneticAlgorithm[I] {
	return &GeneticAlgorithm[I]{
		selection: selection,
		crossover: crossover,
		mutation:  mutation,
	}
}

// Evolve returns a new population of the same size as population. Every slot
// selects two parents independently, crosses and mutates their genes and
// hands the result to build. The returned Statistics describe the input
// generation.
//
// src is consumed sequentially, so a fixed seed reproduces the same
// generation exactly.
func (g *GeneticAlgorithm[I]) Evolve(src rng.Source, population []I, build Builder[I]) ([]I, Statistics, error) {
	if len(population) == 0 {
		return nil, Statistics{}, ErrEmptyPopulation
	}

	fitness := Fitnesses(population)
	stats := NewStatistics(fitness)

	next := make([]I, 0, len(population))
	for slot := range population {
		child, err := g.breed(src, population, fitness)
		if err != nil {
			return nil, stats, fmt.Errorf("slot %d: %w", slot, err)
		}
		ind, err := build(child, src)
		if err != nil {
			return nil, stats, fmt.Errorf("slot %d: build: %w", slot, err)
		}
		next = append(next, ind)
	}
	return next, stats, nil
}

func (g *GeneticAlgorithm[I]) breed(src rng.Source, population []I, fitness []float64) (Chromosome, error) {
	ia, err := g.selection.Select(src, fitness)
	if err != nil {
		return Chromosome{}, fmt.Errorf("select parent a: %w", err)
	}
	ib, err := g.selection.Select(src, fitness)
	if err != nil {
		return Chromosome{}, fmt.Errorf("select parent b: %w", err)
	}

	child, err := g.crossover.Crossover(src, population[ia].Chromosome(), population[ib].Chromosome())
	if err != nil {
		return Chromosome{}, fmt.Errorf("crossover: %w", err)
	}
	g.mutation.Mutate(src, &child)
	return child, nil
}
