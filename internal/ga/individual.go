package ga

import "evosim/internal/rng"

// Individual is what the algorithm needs from a domain entity: its genes and
// a fitness computed beforehand. Both must be free of side effects.
type Individual interface {
	Chromosome() Chromosome
	Fitness() float64
}

// Builder turns a bred chromosome back into a domain individual. It is
// supplied by the caller because construction needs domain context the
// algorithm knows nothing about.
type Builder[I Individual] func(c Chromosome, src rng.Source) (I, error)
