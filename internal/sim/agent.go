package sim

import (
	"fmt"

	"evosim/internal/ga"
	"evosim/internal/nn"
	"evosim/internal/rng"
)

// Agent is an individual in the population: a brain plus the score it
// earned during the last evaluation.
type Agent struct {
	Brain *nn.Network
	Score float64
}

// Chromosome encodes the brain's biases and weights.
func (a *Agent) Chromosome() ga.Chromosome {
	return ga.NewChromosome(a.Brain.Weights())
}

func (a *Agent) Fitness() float64 {
	return a.Score
}

// Builder rebuilds agents for the next generation from bred chromosomes.
type Builder struct {
	Topology []nn.LayerTopology
}

func NewBuilder(topology []nn.LayerTopology) *Builder {
	return &Builder{Topology: topology}
}

// Build decodes c into a fresh brain. The new agent starts with no score.
func (b *Builder) Build(c ga.Chromosome, _ rng.Source) (*Agent, error) {
	brain, err := nn.FromWeights(b.Topology, c.Genes())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ga.ErrChromosomeLengthMismatch, err)
	}
	return &Agent{Brain: brain}, nil
}

// Random creates an agent with a randomly initialised brain.
func (b *Builder) Random(src rng.Source) (*Agent, error) {
	brain, err := nn.Random(src, b.Topology)
	if err != nil {
		return nil, err
	}
	return &Agent{Brain: brain}, nil
}
