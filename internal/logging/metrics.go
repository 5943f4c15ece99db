package logging

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"evosim/internal/ga"
)

// MetricsWriter records per-generation statistics as CSV rows and JSON lines
type MetricsWriter struct {
	csvPath   string
	jsonPath  string
	csvFile   *os.File
	csvWriter *csv.Writer
	jsonFile  *os.File
	log       *zap.Logger
}

// GenerationSummary holds per-generation statistics
type GenerationSummary struct {
	RunID      string  `json:"run_id"`
	Generation int     `json:"generation"`
	Size       int     `json:"size"`
	Best       float64 `json:"best"`
	Worst      float64 `json:"worst"`
	Mean       float64 `json:"mean"`
	Median     float64 `json:"median"`
	StdDev     float64 `json:"std_dev"`
}

// NewSummary converts algorithm statistics into a log record.
func NewSummary(runID string, gen int, stats ga.Statistics) GenerationSummary {
	return GenerationSummary{
		RunID:      runID,
		Generation: gen,
		Size:       stats.Size,
		Best:       stats.Max,
		Worst:      stats.Min,
		Mean:       stats.Mean,
		Median:     stats.Median,
		StdDev:     stats.StdDev,
	}
}

// NewMetricsWriter creates the output directories and opens both files.
func NewMetricsWriter(csvPath, jsonPath string, log *zap.Logger) (*MetricsWriter, error) {
	m := &MetricsWriter{
		csvPath:  csvPath,
		jsonPath: jsonPath,
		log:      log,
	}

	// Ensure directories exist
	if err := os.MkdirAll(filepath.Dir(csvPath), 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0755); err != nil {
		return nil, err
	}

	var err error
	m.csvFile, err = os.Create(csvPath)
	if err != nil {
		return nil, err
	}
	m.csvWriter = csv.NewWriter(m.csvFile)

	header := []string{"run_id", "generation", "size", "best", "worst", "mean", "median", "std_dev"}
	if err := m.csvWriter.Write(header); err != nil {
		m.Close()
		return nil, err
	}

	m.jsonFile, err = os.OpenFile(jsonPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		m.Close()
		return nil, err
	}
	return m, nil
}

// Close flushes and closes all files
func (m *MetricsWriter) Close() error {
	var firstErr error
	if m.csvWriter != nil {
		m.csvWriter.Flush()
		firstErr = m.csvWriter.Error()
	}
	if m.csvFile != nil {
		if err := m.csvFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if m.jsonFile != nil {
		if err := m.jsonFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// LogGeneration appends one summary to both files and the log.
func (m *MetricsWriter) LogGeneration(s GenerationSummary) error {
	row := []string{
		s.RunID,
		strconv.Itoa(s.Generation),
		strconv.Itoa(s.Size),
		fmt.Sprintf("%.4f", s.Best),
		fmt.Sprintf("%.4f", s.Worst),
		fmt.Sprintf("%.4f", s.Mean),
		fmt.Sprintf("%.4f", s.Median),
		fmt.Sprintf("%.4f", s.StdDev),
	}
	if err := m.csvWriter.Write(row); err != nil {
		return err
	}
	m.csvWriter.Flush()
	if err := m.csvWriter.Error(); err != nil {
		return err
	}

	line, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if _, err := m.jsonFile.Write(append(line, '\n')); err != nil {
		return err
	}

	if m.log != nil {
		m.log.Info("generation",
			zap.Int("gen", s.Generation),
			zap.Float64("best", s.Best),
			zap.Float64("mean", s.Mean),
			zap.Float64("std", s.StdDev),
		)
	}
	return nil
}
