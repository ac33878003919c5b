package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/ghcorpus/internal/core/domain"
	"github.com/custodia-labs/ghcorpus/internal/core/ports/driven"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is an in-memory implementation of driven.CorpusStore.
type CorpusStore struct {
	mu        sync.RWMutex
	locations map[string]string
	runs      map[string]domain.Run
	records   map[string][]domain.StoredRecord
}

// NewCorpusStore creates a new in-memory corpus store.
func NewCorpusStore() *CorpusStore {
	return &CorpusStore{
		locations: make(map[string]string),
		runs:      make(map[string]domain.Run),
		records:   make(map[string][]domain.StoredRecord),
	}
}

// PutLocation stores or replaces a location code.
func (s *CorpusStore) PutLocation(_ context.Context, raw, code string) error {
	if raw == "" || code == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[raw] = code
	return nil
}

// Locations returns a copy of all location codes.
func (s *CorpusStore) Locations(_ context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.locations))
	for raw, code := range s.locations {
		out[raw] = code
	}
	return out, nil
}

// SaveRun stores or updates a run.
func (s *CorpusStore) SaveRun(_ context.Context, run domain.Run) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// ListRuns returns all runs, newest first.
func (s *CorpusStore) ListRuns(_ context.Context) ([]domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Run, 0, len(s.runs))
	for _, run := range s.runs {
		result = append(result, run)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.After(result[j].StartedAt)
	})
	return result, nil
}

// SaveRecords replaces the records stored under runID.
func (s *CorpusStore) SaveRecords(_ context.Context, runID string, ds *domain.FlatDataset) error {
	if runID == "" || ds == nil {
		return domain.ErrInvalidInput
	}
	stored := make([]domain.StoredRecord, 0, ds.Len())
	_ = ds.Each(func(id string, rec domain.FlatRecord) error {
		stored = append(stored, domain.StoredRecord{RunID: runID, ID: id, Record: rec})
		return nil
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[runID] = stored
	return nil
}

// Records returns the records stored under runID.
func (s *CorpusStore) Records(_ context.Context, runID string) ([]domain.StoredRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.records[runID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]domain.StoredRecord, len(stored))
	copy(out, stored)
	return out, nil
}
