package ga

import (
	"fmt"
	"math"

	"evosim/internal/rng"
)

// MutationMethod perturbs a chromosome's genes in place. It never changes
// the chromosome's length.
type MutationMethod interface {
	Mutate(src rng.Source, c *Chromosome)
}

// UniformMutation adds Coeff*u, u ~ U[-1, 1], to each gene with probability
// Chance.
type UniformMutation struct {
	Chance float64
	Coeff  float32
}

// NewUniformMutation requires chance in [0, 1] and coeff >= 0.
func NewUniformMutation(chance float64, coeff float32) (UniformMutation, error) {
	if chance < 0 || chance > 1 || math.IsNaN(chance) {
		return UniformMutation{}, fmt.Errorf("%w: chance %v not in [0, 1]", ErrInvalidMutation, chance)
	}
	if coeff < 0 || math.IsNaN(float64(coeff)) {
		return UniformMutation{}, fmt.Errorf("%w: coefficient %v is negative", ErrInvalidMutation, coeff)
	}
	return UniformMutation{Chance: chance, Coeff: coeff}, nil
}

func (m UniformMutation) Mutate(src rng.Source, c *Chromosome) {
	c.Update(func(_ int, gene float32) float32 {
		if src.FloatIn(0, 1) < m.Chance {
			return gene + m.Coeff*src.Float32In(-1, 1)
		}
		return gene
	})
}
