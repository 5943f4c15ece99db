package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"evosim/internal/ga"
	"evosim/internal/nn"
)

// Store persists runs and per-generation checkpoints.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run RunRecord) error
	GetRun(ctx context.Context, id string) (RunRecord, bool, error)
	SaveGeneration(ctx context.Context, gen GenerationRecord) error
	GetGeneration(ctx context.Context, runID string, generation int) (GenerationRecord, bool, error)
	LatestGeneration(ctx context.Context, runID string) (GenerationRecord, bool, error)
}

type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunRecord describes a training run well enough to resume it.
type RunRecord struct {
	VersionedRecord
	ID        string             `json:"id"`
	Task      string             `json:"task"`
	Seed      int64              `json:"seed"`
	Topology  []nn.LayerTopology `json:"topology"`
	CreatedAt time.Time          `json:"created_at"`
}

// GenomeRecord is one evaluated individual.
type GenomeRecord struct {
	Chromosome ga.Chromosome `json:"chromosome"`
	Fitness    float64       `json:"fitness"`
}

// GenerationRecord is a checkpoint of one evaluated generation.
type GenerationRecord struct {
	VersionedRecord
	RunID      string         `json:"run_id"`
	Generation int            `json:"generation"`
	Stats      ga.Statistics  `json:"stats"`
	Genomes    []GenomeRecord `json:"genomes"`
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.NewString()
}

func currentVersion() VersionedRecord {
	return VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion}
}

// NewRunRecord stamps a run record with the current versions.
func NewRunRecord(id, task string, seed int64, topology []nn.LayerTopology) RunRecord {
	return RunRecord{
		VersionedRecord: currentVersion(),
		ID:              id,
		Task:            task,
		Seed:            seed,
		Topology:        topology,
		CreatedAt:       time.Now().UTC(),
	}
}

// NewGenerationRecord snapshots individuals and their fitness.
func NewGenerationRecord[I ga.Individual](runID string, generation int, population []I) GenerationRecord {
	rec := GenerationRecord{
		VersionedRecord: currentVersion(),
		RunID:           runID,
		Generation:      generation,
		Stats:           ga.NewStatistics(ga.Fitnesses(population)),
		Genomes:         make([]GenomeRecord, len(population)),
	}
	for i, ind := range population {
		rec.Genomes[i] = GenomeRecord{Chromosome: ind.Chromosome(), Fitness: ind.Fitness()}
	}
	return rec
}

// Chromosomes returns the genomes' chromosomes in order.
func (g GenerationRecord) Chromosomes() []ga.Chromosome {
	out := make([]ga.Chromosome, len(g.Genomes))
	for i, rec := range g.Genomes {
		out[i] = rec.Chromosome
	}
	return out
}
