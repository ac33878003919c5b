package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ghcorpus/internal/cleaner"
	"github.com/custodia-labs/ghcorpus/internal/core/domain"
	"github.com/custodia-labs/ghcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/ghcorpus/internal/logger"
)

// MetaSuffix is appended to a cleaned output path to name its diagnostics file.
const MetaSuffix = ".meta.jsonl"

// MetaPath returns the diagnostics path paired with a cleaned output path.
func MetaPath(out string) string {
	return out + MetaSuffix
}

// CleaningService runs the cleaning pipeline over JSONL files and records
// each run in the corpus store.
type CleaningService struct {
	cleaner *cleaner.Cleaner
	store   driven.CorpusStore
}

// NewCleaningService creates a cleaning service. store may be nil, in which
// case runs are not recorded.
func NewCleaningService(c *cleaner.Cleaner, store driven.CorpusStore) *CleaningService {
	return &CleaningService{cleaner: c, store: store}
}

// CleanFile reads {id, text} records from in, writes kept records to out and
// one diagnostic record per input to MetaPath(out).
func (s *CleaningService) CleanFile(ctx context.Context, in, out string) (*domain.Run, error) {
	if s.cleaner == nil {
		return nil, fmt.Errorf("cleaning service: %w", domain.ErrInvalidInput)
	}
	if in == "" || out == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run := &domain.Run{
		ID:        uuid.NewString(),
		Kind:      domain.RunClean,
		Input:     in,
		Output:    out,
		StartedAt: time.Now(),
	}
	logger.Section("Clean")
	logger.Debug("run %s: %s -> %s", run.ID, in, out)

	summary, err := s.cleanFile(in, out)
	if err != nil {
		return nil, err
	}

	run.Kept = summary.Kept
	run.Dropped = summary.Dropped
	run.FinishedAt = time.Now()
	logger.Info("kept %d, dropped %d, total %d", run.Kept, run.Dropped, run.Total())

	if s.store != nil {
		if err := s.store.SaveRun(ctx, *run); err != nil {
			return run, fmt.Errorf("save clean run: %w", err)
		}
	}
	return run, nil
}

func (s *CleaningService) cleanFile(in, out string) (summary domain.CleanSummary, err error) {
	src, err := os.Open(in)
	if err != nil {
		return summary, fmt.Errorf("open input: %w", err)
	}
	defer src.Close()

	kept, err := os.Create(out)
	if err != nil {
		return summary, fmt.Errorf("create output: %w", err)
	}
	defer func() { err = errors.Join(err, kept.Close()) }()

	diag, err := os.Create(MetaPath(out))
	if err != nil {
		return summary, fmt.Errorf("create diagnostics: %w", err)
	}
	defer func() { err = errors.Join(err, diag.Close()) }()

	summary, err = s.cleaner.Process(src, kept, diag)
	if err != nil {
		return summary, fmt.Errorf("clean %s: %w", in, err)
	}
	return summary, nil
}
