package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghcorpus/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ghcorpus/internal/core/domain"
)

func sampleFlat() *domain.FlatDataset {
	ds := domain.NewFlatDataset()
	ds.Add("0", domain.FlatRecord{Author: "alice", Type: domain.RecordIssue, Text: "raw issue"})
	ds.Add("0_0", domain.FlatRecord{Author: "bob", Type: domain.RecordComment, ParentIssueID: "0", Text: "raw comment"})
	ds.Add("1", domain.FlatRecord{Author: "carol", Type: domain.RecordIssue, Text: "dropped later"})
	return ds
}

func TestMerge(t *testing.T) {
	cleaned := []domain.TextRecord{
		{ID: "0_0", Text: "clean comment"},
		{ID: "0", Text: "clean issue"},
		{ID: "unknown", Text: "ignored"},
	}

	joined := Merge(sampleFlat(), cleaned)

	assert.Equal(t, []string{"0", "0_0"}, joined.IDs(), "flat order is kept")
	rec, _ := joined.Get("0")
	assert.Equal(t, "clean issue", rec.Text)
	assert.Equal(t, "alice", rec.Author)
	rec, _ = joined.Get("0_0")
	assert.Equal(t, "clean comment", rec.Text)
	assert.Equal(t, "0", rec.ParentIssueID)
}

func TestMerge_LastCleanedTextWins(t *testing.T) {
	cleaned := []domain.TextRecord{
		{ID: "0", Text: "first"},
		{ID: "0", Text: "second"},
	}

	joined := Merge(sampleFlat(), cleaned)

	rec, _ := joined.Get("0")
	assert.Equal(t, "second", rec.Text)
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	flat := sampleFlat()

	Merge(flat, []domain.TextRecord{{ID: "0", Text: "clean"}})

	rec, _ := flat.Get("0")
	assert.Equal(t, "raw issue", rec.Text)
}

func TestMerge_Empty(t *testing.T) {
	assert.Zero(t, Merge(sampleFlat(), nil).Len())
	assert.Zero(t, Merge(nil, []domain.TextRecord{{ID: "0", Text: "x"}}).Len())
	assert.Zero(t, Merge(sampleFlat(), []domain.TextRecord{{ID: "", Text: "x"}}).Len())
}

func TestJoinService_Join_PersistsRecords(t *testing.T) {
	store := memory.NewCorpusStore()
	service := NewJoinService(store)
	ctx := context.Background()

	joined, run, err := service.Join(ctx, sampleFlat(), []domain.TextRecord{{ID: "0", Text: "clean issue"}}, "final.jsonl")

	require.NoError(t, err)
	assert.Equal(t, 1, joined.Len())
	require.NotNil(t, run)
	assert.Equal(t, domain.RunJoin, run.Kind)
	assert.Equal(t, 1, run.Kept)
	assert.Equal(t, 2, run.Dropped)
	assert.Equal(t, "final.jsonl", run.Output)

	stored, err := store.Records(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "0", stored[0].ID)
	assert.Equal(t, "clean issue", stored[0].Record.Text)

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestJoinService_Join_NoStore(t *testing.T) {
	joined, run, err := NewJoinService(nil).Join(context.Background(), sampleFlat(), nil, "")

	require.NoError(t, err)
	assert.Zero(t, joined.Len())
	assert.Equal(t, 3, run.Dropped)
}

func TestJoinService_Join_Errors(t *testing.T) {
	service := NewJoinService(nil)

	_, _, err := service.Join(context.Background(), nil, nil, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = service.Join(ctx, sampleFlat(), nil, "")
	assert.ErrorIs(t, err, context.Canceled)
}

type failingStore struct {
	*memory.CorpusStore
}

func (failingStore) SaveRecords(context.Context, string, *domain.FlatDataset) error {
	return errors.New("disk full")
}

func TestJoinService_Join_StoreFailure(t *testing.T) {
	service := NewJoinService(failingStore{memory.NewCorpusStore()})

	joined, run, err := service.Join(context.Background(), sampleFlat(), []domain.TextRecord{{ID: "0", Text: "x"}}, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NotNil(t, joined)
	assert.NotNil(t, run)
}
