package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/idkeeper/internal/dbx"
	"github.com/dmitrijs2005/idkeeper/internal/server/repositories/accounts"
)

// RepositoryManager vends repositories for one SQL dialect and migrates its
// schema.
type RepositoryManager interface {
	Dialect() string
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
}
