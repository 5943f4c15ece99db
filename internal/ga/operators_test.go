package ga

import (
	"testing"

	"evosim/internal/rng"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parents() (Chromosome, Chromosome) {
	a := make([]float32, 100)
	b := make([]float32, 100)
	for i := range a {
		a[i] = float32(i)
		b[i] = float32(-i - 1)
	}
	return NewChromosome(a), NewChromosome(b)
}

func TestUniformCrossoverPurity(t *testing.T) {
	a, b := parents()
	child, err := NewUniformCrossover().Crossover(rng.New(0), a, b)
	require.NoError(t, err)
	require.Equal(t, a.Len(), child.Len())

	fromA, fromB := 0, 0
	for i, g := range child.All() {
		ga, _ := a.At(i)
		gb, _ := b.At(i)
		switch g {
		case ga:
			fromA++
		case gb:
			fromB++
		default:
			t.Fatalf("gene %d = %v comes from neither parent", i, g)
		}
	}
	// A fair coin per gene: both parents contribute.
	assert.Greater(t, fromA, 25)
	assert.Greater(t, fromB, 25)
}

func TestSinglePointCrossover(t *testing.T) {
	a, b := parents()
	child, err := NewSinglePointCrossover().Crossover(rng.New(4), a, b)
	require.NoError(t, err)
	require.Equal(t, a.Len(), child.Len())

	switched := false
	for i, g := range child.All() {
		ga, _ := a.At(i)
		gb, _ := b.At(i)
		if switched {
			assert.Equal(t, gb, g, "gene %d after cut", i)
			continue
		}
		if g != ga {
			switched = true
			assert.Equal(t, gb, g)
		}
	}
}

func TestCrossoverLengthMismatch(t *testing.T) {
	a := NewChromosome([]float32{1, 2, 3})
	b := NewChromosome([]float32{1, 2})
	for _, m := range []CrossoverMethod{NewUniformCrossover(), NewSinglePointCrossover()} {
		_, err := m.Crossover(rng.New(0), a, b)
		assert.ErrorIs(t, err, ErrChromosomeLengthMismatch)
	}
}

func TestUniformMutationZeroChanceIsIdentity(t *testing.T) {
	m, err := NewUniformMutation(0, 10)
	require.NoError(t, err)

	c, _ := parents()
	before := c.Genes()
	m.Mutate(rng.New(0), &c)
	assert.Equal(t, before, c.Genes())
}

func TestUniformMutationFullChance(t *testing.T) {
	m, err := NewUniformMutation(1, 0.5)
	require.NoError(t, err)

	c, _ := parents()
	before := c.Genes()
	m.Mutate(rng.New(0), &c)

	require.Equal(t, len(before), c.Len())
	changed := 0
	for i, g := range c.All() {
		assert.InDelta(t, before[i], g, 0.5)
		if g != before[i] {
			changed++
		}
	}
	assert.Greater(t, changed, 90)
}

func TestUniformMutationPreservesLength(t *testing.T) {
	m, err := NewUniformMutation(0.3, 2)
	require.NoError(t, err)
	for n := 0; n < 20; n++ {
		c := NewChromosome(make([]float32, n))
		m.Mutate(rng.New(int64(n)), &c)
		assert.Equal(t, n, c.Len())
	}
}

func TestNewUniformMutationValidates(t *testing.T) {
	_, err := NewUniformMutation(-0.1, 1)
	assert.ErrorIs(t, err, ErrInvalidMutation)
	_, err = NewUniformMutation(1.1, 1)
	assert.ErrorIs(t, err, ErrInvalidMutation)
	_, err = NewUniformMutation(0.5, -1)
	assert.ErrorIs(t, err, ErrInvalidMutation)
}
