// Package sqlite provides the SQLite-backed corpus store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. One database holds three tables:
//
//   - location_codes: raw author location → country code
//   - runs: clean and join run bookkeeping
//   - records: joined flat records, keyed by run
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files; applied
// versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.ghcorpus/data/corpus.db
package sqlite
