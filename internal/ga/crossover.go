package ga

import (
	"fmt"

	"evosim/internal/rng"
)

// CrossoverMethod combines two parents of equal length into one child.
type CrossoverMethod interface {
	Crossover(src rng.Source, a, b Chromosome) (Chromosome, error)
}

func checkLengths(a, b Chromosome) error {
	if a.Len() != b.Len() {
		return fmt.Errorf("%w: %d vs %d", ErrChromosomeLengthMismatch, a.Len(), b.Len())
	}
	return nil
}

// UniformCrossover flips a fair coin per gene position to decide which
// parent the child's gene comes from.
type UniformCrossover struct{}

func NewUniformCrossover() UniformCrossover {
	return UniformCrossover{}
}

func (UniformCrossover) Crossover(src rng.Source, a, b Chromosome) (Chromosome, error) {
	if err := checkLengths(a, b); err != nil {
		return Chromosome{}, err
	}

	child := make([]float32, a.Len())
	for i := range child {
		if src.Bool() {
			child[i] = a.genes[i]
		} else {
			child[i] = b.genes[i]
		}
	}
	return Chromosome{genes: child}, nil
}

// SinglePointCrossover takes genes before a random cut point from a and the
// rest from b.
type SinglePointCrossover struct{}

func NewSinglePointCrossover() SinglePointCrossover {
	return SinglePointCrossover{}
}

func (SinglePointCrossover) Crossover(src rng.Source, a, b Chromosome) (Chromosome, error) {
	if err := checkLengths(a, b); err != nil {
		return Chromosome{}, err
	}

	size := a.Len()
	point := src.IntN(size + 1)

	child := make([]float32, size)
	copy(child[:point], a.genes[:point])
	copy(child[point:], b.genes[point:])
	return Chromosome{genes: child}, nil
}
