package ga

import "errors"

// Precondition failures. None of them are retried; callers avoid them by
// sizing populations and chromosomes correctly up front.
var (
	ErrEmptyPopulation          = errors.New("ga: empty population")
	ErrDegeneratePopulation     = errors.New("ga: total fitness is zero")
	ErrInvalidFitness           = errors.New("ga: fitness must be finite and non-negative")
	ErrChromosomeLengthMismatch = errors.New("ga: chromosome length mismatch")
	ErrIndexOutOfRange          = errors.New("ga: gene index out of range")
	ErrInvalidMutation          = errors.New("ga: invalid mutation parameters")
)
