package logging

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"evosim/internal/ga"
	"evosim/internal/nn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, log)

	_, err = NewLogger("loud")
	assert.Error(t, err)
}

func TestMetricsWriter(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "a", "run.csv")
	jsonPath := filepath.Join(dir, "b", "run.jsonl")

	m, err := NewMetricsWriter(csvPath, jsonPath, zap.NewNop())
	require.NoError(t, err)

	stats := ga.NewStatistics([]float64{1, 2, 3})
	require.NoError(t, m.LogGeneration(NewSummary("run-1", 0, stats)))
	require.NoError(t, m.LogGeneration(NewSummary("run-1", 1, stats)))
	require.NoError(t, m.Close())

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "generation", rows[0][1])
	assert.Equal(t, []string{"run-1", "1", "3", "3.0000", "1.0000", "2.0000", "2.0000", "0.8165"}, rows[2])

	jf, err := os.Open(jsonPath)
	require.NoError(t, err)
	defer jf.Close()
	var lines []GenerationSummary
	scanner := bufio.NewScanner(jf)
	for scanner.Scan() {
		var s GenerationSummary
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &s))
		lines = append(lines, s)
	}
	require.Len(t, lines, 2)
	assert.Equal(t, 3.0, lines[0].Best)
	assert.Equal(t, 1, lines[1].Generation)
}

func TestChampionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts", "champion.json")
	want := Champion{
		RunID:      "run-1",
		Generation: 12,
		Fitness:    3.5,
		Task:       "xor",
		Topology:   []nn.LayerTopology{{Neurons: 2}, {Neurons: 1}},
		Chromosome: ga.NewChromosome([]float32{0.5, -0.25, 1}),
	}
	require.NoError(t, SaveChampion(path, want))

	got, err := LoadChampion(path)
	require.NoError(t, err)
	assert.Equal(t, want.Topology, got.Topology)
	assert.True(t, want.Chromosome.Equal(got.Chromosome))
	assert.Equal(t, want.Fitness, got.Fitness)
}
