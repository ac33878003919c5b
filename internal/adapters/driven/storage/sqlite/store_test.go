package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghcorpus/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "ghcorpus-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func strPtr(s string) *string { return &s }

func TestNewStore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.Equal(t, DBFile, filepath.Base(store.Path()))
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)

	v, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.PutLocation(ctx, "Berlin", "DE"))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	locs, err := reopened.Locations(ctx)
	require.NoError(t, err)
	assert.Equal(t, "DE", locs["Berlin"])

	v, err := reopened.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestStore_Migrate_SkipsAppliedAndUnnumbered(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	fsys := fstest.MapFS{
		"001_initial.up.sql": {Data: []byte("THIS WOULD FAIL;")},
		"002_extra.up.sql":   {Data: []byte("CREATE TABLE extra (x INTEGER);")},
		"002_extra.down.sql": {Data: []byte("DROP TABLE extra;")},
		"readme.up.sql":      {Data: []byte("THIS WOULD FAIL TOO;")},
	}

	require.NoError(t, store.migrate(fsys))

	v, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = store.db.Exec("INSERT INTO extra (x) VALUES (1)")
	assert.NoError(t, err)
}

func TestStore_Locations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.PutLocation(ctx, "San Francisco, CA", "US"))
	require.NoError(t, store.PutLocation(ctx, "Berlin", "DE"))
	require.NoError(t, store.PutLocation(ctx, "Berlin", "DE-BE"))

	locs, err := store.Locations(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"San Francisco, CA": "US", "Berlin": "DE-BE"}, locs)

	assert.ErrorIs(t, store.PutLocation(ctx, "", "US"), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.PutLocation(ctx, "Paris", ""), domain.ErrInvalidInput)
}

func TestStore_Runs(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	clean := domain.Run{
		ID: "run-clean", Kind: domain.RunClean, Input: "texts.jsonl", Output: "texts_cleaned.jsonl",
		Kept: 7, Dropped: 3, StartedAt: base, FinishedAt: base.Add(time.Second),
	}
	join := domain.Run{ID: "run-join", Kind: domain.RunJoin, StartedAt: base.Add(time.Minute)}

	require.NoError(t, store.SaveRun(ctx, clean))
	require.NoError(t, store.SaveRun(ctx, join))

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-join", runs[0].ID)
	assert.True(t, runs[0].FinishedAt.IsZero())

	got := runs[1]
	assert.Equal(t, "run-clean", got.ID)
	assert.Equal(t, domain.RunClean, got.Kind)
	assert.Equal(t, "texts.jsonl", got.Input)
	assert.Equal(t, 7, got.Kept)
	assert.Equal(t, 10, got.Total())
	assert.True(t, got.StartedAt.Equal(base))
	assert.True(t, got.FinishedAt.Equal(base.Add(time.Second)))

	clean.Kept = 8
	require.NoError(t, store.SaveRun(ctx, clean))
	runs, err = store.ListRuns(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
	assert.Equal(t, 8, runs[1].Kept)

	assert.ErrorIs(t, store.SaveRun(ctx, domain.Run{}), domain.ErrInvalidInput)
}

func TestStore_Records(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SaveRun(ctx, domain.Run{ID: "j1", Kind: domain.RunJoin, StartedAt: time.Now()}))

	ds := domain.NewFlatDataset()
	ds.Add("1", domain.FlatRecord{CreatedAt: "c1", Author: "alice", AuthorLocation: strPtr("DE"), Type: domain.RecordIssue, Text: "issue"})
	ds.Add("1_0", domain.FlatRecord{CreatedAt: "c2", Author: "bob", Type: domain.RecordComment, ParentIssueID: "1", Text: "comment"})
	ds.Add("0", domain.FlatRecord{Author: "", Type: domain.RecordIssue, Text: "bot issue"})

	require.NoError(t, store.SaveRecords(ctx, "j1", ds))

	got, err := store.Records(ctx, "j1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"1", "1_0", "0"}, []string{got[0].ID, got[1].ID, got[2].ID})

	first, _ := ds.Get("1")
	assert.Equal(t, first, got[0].Record)
	second, _ := ds.Get("1_0")
	assert.Equal(t, second, got[1].Record)
	assert.Nil(t, got[1].Record.AuthorLocation)
	assert.Equal(t, "j1", got[2].RunID)

	// Saving again replaces the previous set.
	small := domain.NewFlatDataset()
	small.Add("9", domain.FlatRecord{Type: domain.RecordIssue, Text: "only"})
	require.NoError(t, store.SaveRecords(ctx, "j1", small))
	got, err = store.Records(ctx, "j1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "9", got[0].ID)
}

func TestStore_Records_Errors(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.Records(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.SaveRecords(ctx, "", domain.NewFlatDataset()), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.SaveRecords(ctx, "x", nil), domain.ErrInvalidInput)

	ds := domain.NewFlatDataset()
	ds.Add("0", domain.FlatRecord{Type: domain.RecordIssue, Text: "orphan"})
	assert.Error(t, store.SaveRecords(ctx, "no-such-run", ds), "records need an existing run")
}

func TestStore_Records_EmptyRun(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SaveRun(ctx, domain.Run{ID: "empty", Kind: domain.RunJoin, StartedAt: time.Now()}))

	got, err := store.Records(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}
