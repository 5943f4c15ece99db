package storage

import (
	"context"
	"errors"
	"sync"
)

var errNotInitialized = errors.New("store is not initialized")

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]RunRecord
	generations map[string]map[int]GenerationRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]RunRecord)
	s.generations = make(map[string]map[int]GenerationRecord)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

// SaveGeneration stores a deep copy so later mutation by the caller does
// not leak into the store.
func (s *MemoryStore) SaveGeneration(_ context.Context, gen GenerationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	byGen, ok := s.generations[gen.RunID]
	if !ok {
		byGen = make(map[int]GenerationRecord)
		s.generations[gen.RunID] = byGen
	}
	byGen[gen.Generation] = cloneGeneration(gen)
	return nil
}

func (s *MemoryStore) GetGeneration(_ context.Context, runID string, generation int) (GenerationRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gen, ok := s.generations[runID][generation]
	if !ok {
		return GenerationRecord{}, false, nil
	}
	return cloneGeneration(gen), true, nil
}

func (s *MemoryStore) LatestGeneration(_ context.Context, runID string) (GenerationRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest, found := GenerationRecord{}, false
	for g, rec := range s.generations[runID] {
		if !found || g > latest.Generation {
			latest, found = rec, true
		}
	}
	if !found {
		return GenerationRecord{}, false, nil
	}
	return cloneGeneration(latest), true, nil
}

func cloneGeneration(g GenerationRecord) GenerationRecord {
	out := g
	out.Genomes = append([]GenomeRecord(nil), g.Genomes...)
	return out
}
