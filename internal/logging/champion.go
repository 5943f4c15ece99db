package logging

import (
	"encoding/json"
	"os"
	"path/filepath"

	"evosim/internal/ga"
	"evosim/internal/nn"
)

// Champion is the on-disk form of the best agent of a run.
type Champion struct {
	RunID      string             `json:"run_id"`
	Generation int                `json:"generation"`
	Fitness    float64            `json:"fitness"`
	Task       string             `json:"task"`
	Topology   []nn.LayerTopology `json:"topology"`
	Chromosome ga.Chromosome      `json:"chromosome"`
}

// SaveChampion writes the champion to path, creating parent directories.
func SaveChampion(path string, c Champion) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadChampion loads a champion from a file
func LoadChampion(path string) (*Champion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Champion
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
