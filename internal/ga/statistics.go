package ga

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Statistics summarises the fitness of one generation.
type Statistics struct {
	Size   int     `json:"size"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// NewStatistics computes Statistics over fitness. An empty slice yields the
// zero value.
func NewStatistics(fitness []float64) Statistics {
	if len(fitness) == 0 {
		return Statistics{}
	}

	sorted := slices.Clone(fitness)
	slices.Sort(sorted)

	s := Statistics{
		Size:   len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
	s.Mean, s.StdDev = stat.PopMeanStdDev(sorted, nil)
	return s
}

func (s Statistics) String() string {
	return fmt.Sprintf("min=%.3f max=%.3f mean=%.3f median=%.3f std=%.3f",
		s.Min, s.Max, s.Mean, s.Median, s.StdDev)
}
