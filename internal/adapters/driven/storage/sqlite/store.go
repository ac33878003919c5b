package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/ghcorpus/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/ghcorpus/internal/core/domain"
	"github.com/custodia-labs/ghcorpus/internal/core/ports/driven"
)

// DBFile is the database file name inside the data directory.
const DBFile = "corpus.db"

// Ensure Store implements the interface.
var _ driven.CorpusStore = (*Store)(nil)

// Store is a SQLite-backed driven.CorpusStore.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in dataDir.
// If dataDir is empty, defaults to ~/.ghcorpus/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".ghcorpus", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies every NNN_*.up.sql newer than the recorded schema version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v)
	return v, err
}

// ==================== Location codes ====================

// PutLocation stores or replaces the country code for a raw location.
func (s *Store) PutLocation(ctx context.Context, raw, code string) error {
	if raw == "" || code == "" {
		return domain.ErrInvalidInput
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO location_codes (location_raw, country_code, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(location_raw) DO UPDATE SET
			country_code = excluded.country_code,
			updated_at = excluded.updated_at
	`, raw, code, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving location code: %w", err)
	}
	return nil
}

// Locations returns all location codes.
func (s *Store) Locations(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT location_raw, country_code FROM location_codes`)
	if err != nil {
		return nil, fmt.Errorf("listing location codes: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var raw, code string
		if err := rows.Scan(&raw, &code); err != nil {
			return nil, fmt.Errorf("scanning location code: %w", err)
		}
		out[raw] = code
	}
	return out, rows.Err()
}

// ==================== Runs ====================

// SaveRun stores or updates a run.
func (s *Store) SaveRun(ctx context.Context, run domain.Run) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, kind, input, output, kept, dropped, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			input = excluded.input,
			output = excluded.output,
			kept = excluded.kept,
			dropped = excluded.dropped,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at
	`, run.ID, string(run.Kind), run.Input, run.Output, run.Kept, run.Dropped,
		run.StartedAt.UTC(), nullTime(run.FinishedAt))
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]domain.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, input, output, kept, dropped, started_at, finished_at
		FROM runs ORDER BY started_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		var run domain.Run
		var kind string
		var finished sql.NullTime
		if err := rows.Scan(&run.ID, &kind, &run.Input, &run.Output,
			&run.Kept, &run.Dropped, &run.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.Kind = domain.RunKind(kind)
		if finished.Valid {
			run.FinishedAt = finished.Time
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ==================== Records ====================

// SaveRecords replaces the records stored under runID. The run must exist.
func (s *Store) SaveRecords(ctx context.Context, runID string, ds *domain.FlatDataset) (err error) {
	if runID == "" || ds == nil {
		return domain.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM records WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (run_id, seq, id, created_at, author, author_location, type, parent_issue_id, text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	seq := 0
	err = ds.Each(func(id string, rec domain.FlatRecord) error {
		_, execErr := stmt.ExecContext(ctx, runID, seq, id, rec.CreatedAt, rec.Author,
			nullStringPtr(rec.AuthorLocation), string(rec.Type), nullString(rec.ParentIssueID), rec.Text)
		seq++
		return execErr
	})
	if err != nil {
		return fmt.Errorf("saving records: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing records: %w", err)
	}
	return nil
}

// Records returns the records stored under runID in insertion order.
func (s *Store) Records(ctx context.Context, runID string) ([]domain.StoredRecord, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, runID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, author, author_location, type, parent_issue_id, text
		FROM records WHERE run_id = ? ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	out := []domain.StoredRecord{}
	for rows.Next() {
		var rec domain.FlatRecord
		var id, kind string
		var location, parent sql.NullString
		if err := rows.Scan(&id, &rec.CreatedAt, &rec.Author, &location, &kind, &parent, &rec.Text); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		rec.Type = domain.RecordType(kind)
		if location.Valid {
			loc := location.String
			rec.AuthorLocation = &loc
		}
		rec.ParentIssueID = parent.String
		out = append(out, domain.StoredRecord{RunID: runID, ID: id, Record: rec})
	}
	return out, rows.Err()
}

// ==================== Helpers ====================

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
