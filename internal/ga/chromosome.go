package ga

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
)

// Chromosome is the flat, order-significant gene encoding of an individual.
// Position i always encodes the same weight or bias.
type Chromosome struct {
	genes []float32
}

// NewChromosome copies genes into a new chromosome. Any length is accepted;
// length compatibility is checked by crossover and decoding.
func NewChromosome(genes []float32) Chromosome {
	return Chromosome{genes: slices.Clone(genes)}
}

// FromSeq collects a finite sequence of genes into a chromosome.
func FromSeq(seq iter.Seq[float32]) Chromosome {
	return Chromosome{genes: slices.Collect(seq)}
}

// Len returns the number of genes.
func (c Chromosome) Len() int {
	return len(c.genes)
}

// At returns the gene at index i.
func (c Chromosome) At(i int) (float32, error) {
	if i < 0 || i >= len(c.genes) {
		return 0, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, len(c.genes))
	}
	return c.genes[i], nil
}

// All iterates genes in order. The sequence can be ranged over repeatedly.
func (c Chromosome) All() iter.Seq2[int, float32] {
	return func(yield func(int, float32) bool) {
		for i, g := range c.genes {
			if !yield(i, g) {
				return
			}
		}
	}
}

// Update rewrites every gene in place with fn's result.
func (c *Chromosome) Update(fn func(i int, gene float32) float32) {
	for i, g := range c.genes {
		c.genes[i] = fn(i, g)
	}
}

// Genes returns a copy of the genes.
func (c Chromosome) Genes() []float32 {
	return slices.Clone(c.genes)
}

func (c Chromosome) Equal(other Chromosome) bool {
	return slices.Equal(c.genes, other.genes)
}

func (c Chromosome) String() string {
	return fmt.Sprintf("Chromosome%v", c.genes)
}

func (c Chromosome) MarshalJSON() ([]byte, error) {
	if c.genes == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.genes)
}

func (c *Chromosome) UnmarshalJSON(data []byte) error {
	var genes []float32
	if err := json.Unmarshal(data, &genes); err != nil {
		return err
	}
	c.genes = genes
	return nil
}
