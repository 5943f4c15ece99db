package sim

import (
	"sort"

	"evosim/internal/ga"
	"evosim/internal/rng"
)

// Population is one generation of agents.
type Population struct {
	Generation int
	Agents     []*Agent
}

// NewPopulation creates generation zero with random brains.
func NewPopulation(b *Builder, size int, src rng.Source) (*Population, error) {
	p := &Population{Agents: make([]*Agent, size)}
	for i := range p.Agents {
		a, err := b.Random(src)
		if err != nil {
			return nil, err
		}
		p.Agents[i] = a
	}
	return p, nil
}

// FromChromosomes restores a population, e.g. from a checkpoint.
func FromChromosomes(b *Builder, generation int, chromosomes []ga.Chromosome, src rng.Source) (*Population, error) {
	p := &Population{Generation: generation, Agents: make([]*Agent, len(chromosomes))}
	for i, c := range chromosomes {
		a, err := b.Build(c, src)
		if err != nil {
			return nil, err
		}
		p.Agents[i] = a
	}
	return p, nil
}

// Size returns the population size
func (p *Population) Size() int {
	return len(p.Agents)
}

// SortByFitness sorts agents by fitness, descending. Ties keep their order.
func (p *Population) SortByFitness() {
	sort.SliceStable(p.Agents, func(i, j int) bool {
		return p.Agents[i].Score > p.Agents[j].Score
	})
}

// TopK sorts the population and returns its K fittest agents.
func (p *Population) TopK(k int) []*Agent {
	p.SortByFitness()
	if k > len(p.Agents) {
		k = len(p.Agents)
	}
	return p.Agents[:k]
}

// Fitnesses returns every agent's score in population order.
func (p *Population) Fitnesses() []float64 {
	return ga.Fitnesses(p.Agents)
}

// Evolve replaces the agents with the next generation bred by alg.
func (p *Population) Evolve(alg *ga.GeneticAlgorithm[*Agent], b *Builder, src rng.Source) (ga.Statistics, error) {
	next, stats, err := alg.Evolve(src, p.Agents, b.Build)
	if err != nil {
		return stats, err
	}
	p.Agents = next
	p.Generation++
	return stats, nil
}
