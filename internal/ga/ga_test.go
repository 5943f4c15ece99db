package ga

import (
	"testing"

	"evosim/internal/rng"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testIndividual struct {
	chromosome Chromosome
	fitness    float64
}

func (t *testIndividual) Chromosome() Chromosome { return t.chromosome }
func (t *testIndividual) Fitness() float64       { return t.fitness }

func newTestIndividual(fitness float64, genes ...float32) *testIndividual {
	return &testIndividual{chromosome: NewChromosome(genes), fitness: fitness}
}

// rebuild treats the sum of genes as fitness so later generations stay
// selectable.
func rebuild(c Chromosome, _ rng.Source) (*testIndividual, error) {
	var sum float64
	for _, g := range c.All() {
		sum += float64(g)
	}
	if sum < 0 {
		sum = -sum
	}
	return &testIndividual{chromosome: c, fitness: sum + 0.1}, nil
}

func testPopulation() []*testIndividual {
	return []*testIndividual{
		newTestIndividual(1, 0, 0, 0),
		newTestIndividual(2, 1, 1, 1),
		newTestIndividual(3, 1, 2, 3),
		newTestIndividual(4, 0, 3, 1),
	}
}

func testAlgorithm(t *testing.T) *GeneticAlgorithm[*testIndividual] {
	t.Helper()
	mutation, err := NewUniformMutation(0.5, 0.5)
	require.NoError(t, err)
	return New[*testIndividual](NewRouletteWheelSelection(), NewUniformCrossover(), mutation)
}

func TestEvolveKeepsPopulationSize(t *testing.T) {
	alg := testAlgorithm(t)
	for n := 1; n <= 8; n++ {
		population := make([]*testIndividual, n)
		for i := range population {
			population[i] = newTestIndividual(float64(i+1), float32(i), 1)
		}
		next, stats, err := alg.Evolve(rng.New(int64(n)), population, rebuild)
		require.NoError(t, err)
		assert.Len(t, next, n)
		assert.Equal(t, n, stats.Size)
	}
}

func TestEvolveEmptyPopulation(t *testing.T) {
	_, _, err := testAlgorithm(t).Evolve(rng.New(0), nil, rebuild)
	assert.ErrorIs(t, err, ErrEmptyPopulation)
}

func TestEvolveIsDeterministic(t *testing.T) {
	alg := testAlgorithm(t)

	run := func() [][]float32 {
		src := rng.New(42)
		population := testPopulation()
		for gen := 0; gen < 10; gen++ {
			var err error
			population, _, err = alg.Evolve(src, population, rebuild)
			require.NoError(t, err)
		}
		out := make([][]float32, len(population))
		for i, ind := range population {
			out[i] = ind.Chromosome().Genes()
		}
		return out
	}

	assert.Equal(t, run(), run())
}

func TestEvolvePropagatesSelectionErrors(t *testing.T) {
	population := []*testIndividual{
		newTestIndividual(0, 1, 2),
		newTestIndividual(0, 3, 4),
	}
	_, _, err := testAlgorithm(t).Evolve(rng.New(0), population, rebuild)
	assert.ErrorIs(t, err, ErrDegeneratePopulation)
}

// alternating picks index 0, 1, 0, 1, ...
type alternating struct{ next int }

func (a *alternating) Select(_ rng.Source, fitness []float64) (int, error) {
	idx := a.next % len(fitness)
	a.next++
	return idx, nil
}

func TestEvolvePropagatesCrossoverErrors(t *testing.T) {
	population := []*testIndividual{
		newTestIndividual(1, 1, 2),
		newTestIndividual(1, 3),
	}
	alg := New[*testIndividual](&alternating{}, NewUniformCrossover(), UniformMutation{})
	_, _, err := alg.Evolve(rng.New(5), population, rebuild)
	assert.ErrorIs(t, err, ErrChromosomeLengthMismatch)
}

func TestEvolveChildrenComeFromParents(t *testing.T) {
	population := []*testIndividual{
		newTestIndividual(1, 1, 1, 1, 1),
		newTestIndividual(1, 2, 2, 2, 2),
	}
	alg := New[*testIndividual](NewRouletteWheelSelection(), NewUniformCrossover(), UniformMutation{})
	next, _, err := alg.Evolve(rng.New(9), population, rebuild)
	require.NoError(t, err)
	for _, ind := range next {
		for _, g := range ind.Chromosome().All() {
			assert.Contains(t, []float32{1, 2}, g)
		}
	}
}

func TestStatistics(t *testing.T) {
	stats := NewStatistics([]float64{2, 1, 4, 3})
	assert.Equal(t, 4, stats.Size)
	assert.Equal(t, 1.0, stats.Min)
	assert.Equal(t, 4.0, stats.Max)
	assert.InDelta(t, 2.5, stats.Mean, 1e-9)
	assert.InDelta(t, 1.118034, stats.StdDev, 1e-6)

	assert.Equal(t, Statistics{}, NewStatistics(nil))
}
