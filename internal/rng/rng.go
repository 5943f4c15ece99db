package rng

import (
	"errors"
	"math"
	"math/rand"
)

var (
	ErrNoWeights     = errors.New("rng: no weights to choose from")
	ErrZeroWeight    = errors.New("rng: total weight is zero")
	ErrInvalidWeight = errors.New("rng: weight is negative or not finite")
)

// Source is the only entropy the engine is allowed to use. Every stochastic
// operation takes one explicitly so that a fixed seed replays bit-identically.
type Source interface {
	// FloatIn returns a uniform value in [lo, hi).
	FloatIn(lo, hi float64) float64
	// Float32In returns a uniform value in [lo, hi).
	Float32In(lo, hi float32) float32
	// IntN returns a uniform value in [0, n). n must be positive.
	IntN(n int) int
	// Bool is a fair coin.
	Bool() bool
	// WeightedChoice returns index i with probability weights[i] / sum(weights).
	WeightedChoice(weights []float64) (int, error)
}

// Rand is a seeded Source backed by math/rand.
type Rand struct {
	r *rand.Rand
}

// New creates a Source seeded with seed.
func New(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// Fork derives an independent child stream. The child's seed is drawn from
// the parent, so forking is itself deterministic.
func (s *Rand) Fork() *Rand {
	return New(s.r.Int63())
}

func (s *Rand) FloatIn(lo, hi float64) float64 {
	return lo + (hi-lo)*s.r.Float64()
}

func (s *Rand) Float32In(lo, hi float32) float32 {
	return lo + (hi-lo)*s.r.Float32()
}

func (s *Rand) IntN(n int) int {
	return s.r.Intn(n)
}

func (s *Rand) Bool() bool {
	return s.r.Float64() < 0.5
}

func (s *Rand) WeightedChoice(weights []float64) (int, error) {
	return weightedChoice(s.r.Float64(), weights)
}

// weightedChoice maps a uniform draw u in [0,1) onto the cumulative weights.
func weightedChoice(u float64, weights []float64) (int, error) {
	if len(weights) == 0 {
		return 0, ErrNoWeights
	}

	total := 0.0
	for _, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return 0, ErrInvalidWeight
		}
		total += w
	}
	if total == 0 {
		return 0, ErrZeroWeight
	}

	target := u * total
	cum := 0.0
	last := 0
	for i, w := range weights {
		if w == 0 {
			continue
		}
		cum += w
		last = i
		if target < cum {
			return i, nil
		}
	}
	// Rounding can leave target == total; the last non-zero weight owns it.
	return last, nil
}
