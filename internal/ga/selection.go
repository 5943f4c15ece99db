package ga

import (
	"fmt"
	"math"

	"evosim/internal/rng"
)

// SelectionMethod picks one parent, biased by fitness. It returns the index
// of the chosen individual in fitness.
type SelectionMethod interface {
	Select(src rng.Source, fitness []float64) (int, error)
}

// Select draws one individual from population with m.
func Select[I Individual](m SelectionMethod, src rng.Source, population []I) (I, error) {
	var zero I
	idx, err := m.Select(src, Fitnesses(population))
	if err != nil {
		return zero, err
	}
	return population[idx], nil
}

// Fitnesses collects the fitness of every individual, in order.
func Fitnesses[I Individual](population []I) []float64 {
	out := make([]float64, len(population))
	for i, ind := range population {
		out[i] = ind.Fitness()
	}
	return out
}

// RouletteWheelSelection is fitness-proportionate selection: individual i is
// returned with probability fitness[i] / sum(fitness). Every draw is
// independent, so the same individual may be picked as both parents.
type RouletteWheelSelection struct{}

func NewRouletteWheelSelection() RouletteWheelSelection {
	return RouletteWheelSelection{}
}

func (RouletteWheelSelection) Select(src rng.Source, fitness []float64) (int, error) {
	if len(fitness) == 0 {
		return 0, ErrEmptyPopulation
	}
	total := 0.0
	for i, f := range fitness {
		if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%w: individual %d has fitness %v", ErrInvalidFitness, i, f)
		}
		total += f
	}
	if total == 0 {
		return 0, ErrDegeneratePopulation
	}
	return src.WeightedChoice(fitness)
}

// TournamentSelection samples Size individuals uniformly with replacement
// and returns the fittest of them.
type TournamentSelection struct {
	Size int
}

func NewTournamentSelection(size int) TournamentSelection {
	return TournamentSelection{Size: size}
}

func (t TournamentSelection) Select(src rng.Source, fitness []float64) (int, error) {
	if len(fitness) == 0 {
		return 0, ErrEmptyPopulation
	}
	k := t.Size
	if k < 1 {
		k = 1
	}
	if k > len(fitness) {
		k = len(fitness)
	}

	best := src.IntN(len(fitness))
	for i := 1; i < k; i++ {
		candidate := src.IntN(len(fitness))
		if fitness[candidate] > fitness[best] {
			best = candidate
		}
	}
	return best, nil
}
