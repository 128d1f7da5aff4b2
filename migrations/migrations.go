// Package migrations embeds the index schema for each supported store.
package migrations

import "embed"

// Directories inside FS, one per database.
const (
	SQLiteDir   = "sqlite"
	PostgresDir = "postgres"
)

// FS holds the SQL migrations in golang-migrate file naming.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
