package driven

import (
	"context"

	"github.com/custodia-labs/ghcorpus/internal/core/domain"
)

// CorpusStore persists location codes, run bookkeeping and joined records.
type CorpusStore interface {
	// PutLocation stores or replaces the country code for a raw location.
	PutLocation(ctx context.Context, raw, code string) error

	// Locations returns all raw location → country code mappings.
	Locations(ctx context.Context) (map[string]string, error)

	// SaveRun stores run bookkeeping.
	SaveRun(ctx context.Context, run domain.Run) error

	// ListRuns returns runs, newest first.
	ListRuns(ctx context.Context) ([]domain.Run, error)

	// SaveRecords stores joined records under a run.
	SaveRecords(ctx context.Context, runID string, ds *domain.FlatDataset) error

	// Records returns the records stored under a run, in insertion order.
	Records(ctx context.Context, runID string) ([]domain.StoredRecord, error)
}
