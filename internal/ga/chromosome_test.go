package ga

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chromosome() Chromosome {
	return NewChromosome([]float32{3, 1, 2})
}

func TestChromosomeLen(t *testing.T) {
	assert.Equal(t, 3, chromosome().Len())
	assert.Equal(t, 0, Chromosome{}.Len())
}

func TestChromosomeAt(t *testing.T) {
	c := chromosome()
	for i, want := range []float32{3, 1, 2} {
		got, err := c.At(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := c.At(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = c.At(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestChromosomeAllIsRestartable(t *testing.T) {
	c := chromosome()
	for pass := 0; pass < 2; pass++ {
		var genes []float32
		for _, g := range c.All() {
			genes = append(genes, g)
		}
		assert.Equal(t, []float32{3, 1, 2}, genes)
	}
}

func TestChromosomeUpdate(t *testing.T) {
	c := chromosome()
	c.Update(func(_ int, g float32) float32 { return g * 10 })
	assert.Equal(t, []float32{30, 10, 20}, c.Genes())
}

func TestChromosomeCopiesInput(t *testing.T) {
	genes := []float32{1, 2}
	c := NewChromosome(genes)
	genes[0] = 99
	assert.Equal(t, []float32{1, 2}, c.Genes())

	out := c.Genes()
	out[1] = 99
	assert.Equal(t, []float32{1, 2}, c.Genes())
}

func TestChromosomeFromSeq(t *testing.T) {
	c := FromSeq(slices.Values([]float32{3, 1, 2}))
	assert.True(t, c.Equal(chromosome()))
}

func TestChromosomeJSON(t *testing.T) {
	data, err := json.Marshal(chromosome())
	require.NoError(t, err)
	assert.JSONEq(t, `[3,1,2]`, string(data))

	var c Chromosome
	require.NoError(t, json.Unmarshal(data, &c))
	assert.True(t, c.Equal(chromosome()))
}
