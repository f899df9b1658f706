// Package accounts persists accounts. Two implementations share one
// contract: PostgresRepository (pgx) and SQLiteRepository (modernc.org/sqlite).
// Both bind to a dbx.DBTX so they work on a *sql.DB or inside a *sql.Tx.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/idkeeper/internal/server/models"
)

// Repository is the credential store.
//
// Create and UpdateProfile rely on the table's UNIQUE constraints, so the
// uniqueness check and the write are a single atomic statement. A violation
// is reported as a *DuplicateKeyError (errors.Is common.ErrDuplicateKey).
// Lookups that match nothing return common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	UpdateProfile(ctx context.Context, id, username, email string) (*models.Account, error)
	// ListAll returns every account ordered by username, then id.
	ListAll(ctx context.Context) ([]*models.Account, error)
}
