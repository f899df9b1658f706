// Package migrations embeds the goose schema migrations, one directory per
// SQL dialect.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
)

const (
	Postgres = "postgres"
	SQLite   = "sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// FS returns the migration files for dialect, rooted at its directory.
func FS(dialect string) (fs.FS, error) {
	switch dialect {
	case Postgres, SQLite:
		return fs.Sub(Migrations, dialect)
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", dialect)
	}
}
