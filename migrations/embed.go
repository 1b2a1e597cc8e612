// Package migrations holds the versioned SQL schema of the relational stores.
package migrations

import "embed"

// FS contains one directory of golang-migrate files per database engine.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Directory names inside FS.
const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)
