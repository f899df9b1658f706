package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"

	"github.com/dmitrijs2005/idkeeper/internal/filex"
	"github.com/dmitrijs2005/idkeeper/internal/server/migrations"
	"github.com/pressly/goose/v3"
)

// sqlitePragmas is appended to every SQLite DSN. Writers wait on the lock
// instead of failing, and write transactions take it up front.
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_txlock=immediate"

// gooseUp is a seam for testing the goose provider run.
var gooseUp = func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return err
	}
	_, err = p.Up(ctx)
	return err
}

func runMigrations(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) error {
	fsys, err := migrations.FS(dir)
	if err != nil {
		return err
	}
	if err := gooseUp(ctx, dialect, db, fsys); err != nil {
		return fmt.Errorf("migrate %s: %w", dir, err)
	}
	return nil
}

// IsPostgresDSN reports whether dsn names a PostgreSQL server.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// SQLiteDSN appends the connection pragmas to a file path or file: URI.
func SQLiteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + sqlitePragmas
	}
	return path + "?" + sqlitePragmas
}

// Open connects to dsn and returns the handle together with the matching
// manager: pgx for postgres:// URLs, SQLite for anything else (a file path).
// SQLite handles are limited to one open connection, so writes are serialized
// by the pool; the file's directory is created if missing.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, nil, fmt.Errorf("database DSN is required")
	}

	var (
		db  *sql.DB
		m   RepositoryManager
		err error
	)
	if IsPostgresDSN(dsn) {
		db, err = sql.Open("pgx", dsn)
		m = NewPostgresRepositoryManager()
	} else {
		m = NewSQLiteRepositoryManager()
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, nil, fmt.Errorf("open %s db: %w", m.Dialect(), err)
		}
		db, err = sql.Open("sqlite", SQLiteDSN(dsn))
		if err == nil {
			db.SetMaxOpenConns(1)
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open %s db: %w", m.Dialect(), err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s db: %w", m.Dialect(), err)
	}

	return db, m, nil
}
