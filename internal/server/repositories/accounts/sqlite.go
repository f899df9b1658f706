package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/idkeeper/internal/common"
	"github.com/dmitrijs2005/idkeeper/internal/dbx"
	"github.com/dmitrijs2005/idkeeper/internal/server/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository stores created_at as unix milliseconds.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

func sqliteClassifyUniqueViolation(err error) (*DuplicateKeyError, bool) {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return nil, false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		// message looks like "UNIQUE constraint failed: accounts.email"
		return &DuplicateKeyError{Field: fieldFromText(se.Error())}, true
	}
	return nil, false
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(s rowScanner) (*models.Account, error) {
	a := &models.Account{}
	var created int64
	if err := s.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &created); err != nil {
		return nil, err
	}
	a.CreatedAt = fromMillis(created)
	return a, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO accounts (id, username, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.Username, account.Email, account.PasswordHash, toMillis(account.CreatedAt))

	if err != nil {
		if dup, ok := sqliteClassifyUniqueViolation(err); ok {
			return nil, dup
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return r.getOne(ctx,
		`SELECT id, username, email, password_hash, created_at FROM accounts WHERE id = $1`, id)
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.getOne(ctx,
		`SELECT id, username, email, password_hash, created_at FROM accounts WHERE email = $1`, email)
}

func (r *SQLiteRepository) UpdateProfile(ctx context.Context, id, username, email string) (*models.Account, error) {
	query :=
		`UPDATE accounts SET username = $1, email = $2
		 WHERE id = $3
		 RETURNING id, username, email, password_hash, created_at
		 `

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, username, email, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		if dup, ok := sqliteClassifyUniqueViolation(err); ok {
			return nil, dup
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]*models.Account, error) {
	query :=
		`SELECT id, username, email, password_hash, created_at FROM accounts
		 ORDER BY username ASC, id ASC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
