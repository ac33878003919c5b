package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ghcorpus/internal/core/domain"
	"github.com/custodia-labs/ghcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/ghcorpus/internal/logger"
)

// Merge keeps the flat records whose id appears in cleaned and replaces
// their text with the cleaned text. Flat order is preserved. If cleaned
// repeats an id, the last text wins.
func Merge(flat *domain.FlatDataset, cleaned []domain.TextRecord) *domain.FlatDataset {
	texts := make(map[string]string, len(cleaned))
	for _, rec := range cleaned {
		if rec.ID == "" {
			continue
		}
		texts[rec.ID] = rec.Text
	}

	out := domain.NewFlatDataset()
	if flat == nil {
		return out
	}
	_ = flat.Each(func(id string, rec domain.FlatRecord) error {
		if text, ok := texts[id]; ok {
			rec.Text = text
			out.Add(id, rec)
		}
		return nil
	})
	return out
}

// JoinService merges cleaned text back onto flattened metadata.
type JoinService struct {
	store driven.CorpusStore
}

// NewJoinService creates a join service. store may be nil, in which case
// joined records are not persisted.
func NewJoinService(store driven.CorpusStore) *JoinService {
	return &JoinService{store: store}
}

// Join merges cleaned onto flat. When a store is configured the joined
// records are saved under a new join run, which is returned.
func (s *JoinService) Join(
	ctx context.Context,
	flat *domain.FlatDataset,
	cleaned []domain.TextRecord,
	output string,
) (*domain.FlatDataset, *domain.Run, error) {
	if flat == nil {
		return nil, nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	run := &domain.Run{
		ID:        uuid.NewString(),
		Kind:      domain.RunJoin,
		Output:    output,
		StartedAt: time.Now(),
	}
	logger.Section("Join")

	joined := Merge(flat, cleaned)
	run.Kept = joined.Len()
	run.Dropped = flat.Len() - joined.Len()
	run.FinishedAt = time.Now()
	logger.Info("joined %d of %d flat records", run.Kept, flat.Len())

	if s.store == nil {
		return joined, run, nil
	}
	if err := s.store.SaveRun(ctx, *run); err != nil {
		return joined, run, fmt.Errorf("save join run: %w", err)
	}
	if err := s.store.SaveRecords(ctx, run.ID, joined); err != nil {
		return joined, run, fmt.Errorf("save joined records: %w", err)
	}
	return joined, run, nil
}
