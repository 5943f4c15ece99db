package eval

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat"
)

// CaseResult captures the network's output on a single case.
type CaseResult struct {
	Case
	Got   []float32 `json:"got"`
	Error float64   `json:"error"` // sum of squared differences
}

// Trace is the per-case record of one agent's evaluation.
type Trace struct {
	Task      string       `json:"task"`
	Score     float64      `json:"score"`
	MaxScore  float64      `json:"max_score"`
	ErrorMean float64      `json:"error_mean"`
	ErrorStd  float64      `json:"error_std"`
	Cases     []CaseResult `json:"cases"`
}

// Aggregate fills in the error mean and standard deviation across cases.
func (t *Trace) Aggregate() {
	if len(t.Cases) == 0 {
		return
	}
	errs := make([]float64, len(t.Cases))
	for i, c := range t.Cases {
		errs[i] = c.Error
	}
	t.ErrorMean, t.ErrorStd = stat.PopMeanStdDev(errs, nil)
}

// Save writes the trace to a file
func (t *Trace) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTrace loads a trace from a file
func LoadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Trace
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
