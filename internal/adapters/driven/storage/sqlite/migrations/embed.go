// Package migrations embeds the corpus database schema.
//
// Files are named NNN_name.up.sql / NNN_name.down.sql and applied in version
// order; each applied version is recorded in schema_migrations.
package migrations

import "embed"

// FS holds the .sql files.
//
//go:embed *.sql
var FS embed.FS
