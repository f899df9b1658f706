// Package services contains server-side business logic. AccountService
// registers accounts, checks credentials, issues bearer tokens and serves
// profiles on top of the credential store, the password hasher and the token
// issuer.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/idkeeper/internal/common"
	"github.com/dmitrijs2005/idkeeper/internal/cryptox"
	"github.com/dmitrijs2005/idkeeper/internal/dbx"
	"github.com/dmitrijs2005/idkeeper/internal/server/auth"
	"github.com/dmitrijs2005/idkeeper/internal/server/config"
	"github.com/dmitrijs2005/idkeeper/internal/server/models"
	"github.com/dmitrijs2005/idkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Caller-facing messages.
const (
	msgRegisterFields  = "username, email and password are required"
	msgProfileFields   = "id, username and email are required"
	msgPasswordTooLong = "password is too long"
	msgAlreadyExists   = "account with this username or email already exists"
	msgBadCredentials  = "invalid email or password"
	msgMissingToken    = "missing token"
	msgTokenExpired    = "token expired"
	msgInvalidToken    = "invalid token"
	msgAccountNotFound = "account not found"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
	VerifyDummy(password string)
}

type TokenIssuer interface {
	Issue(c auth.Claim, ttl time.Duration) (string, error)
	Verify(token string) (*auth.Claim, error)
}

// AccountService holds no per-caller state; every call goes to the store.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	issuer      TokenIssuer
	tokenTTL    time.Duration
	now         func() time.Time
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, issuer TokenIssuer, cfg *config.Config) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		issuer:      issuer,
		tokenTTL:    cfg.TokenTTL,
		now:         time.Now,
	}
}

// Register creates an account. Username and email are stored trimmed; the
// password is hashed exactly as given.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*models.Account, error) {
	const op = "accounts.Register"

	if common.Blank(username) || common.Blank(email) || password == "" {
		return nil, common.NewError(op, common.ErrInvalidArgument, msgRegisterFields)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, cryptox.ErrPasswordTooLong) {
			return nil, common.NewError(op, common.ErrInvalidArgument, msgPasswordTooLong)
		}
		return nil, common.WrapError(op, common.ErrInternal, "", err)
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(username),
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.repomanager.Accounts(s.db).Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateKey) {
			return nil, common.WrapError(op, common.ErrAlreadyExists, msgAlreadyExists, err)
		}
		return nil, common.WrapError(op, common.ErrInternal, "", err)
	}
	return created, nil
}

// Login returns a bearer token for valid credentials. An unknown email and a
// wrong password fail identically, including the time spent hashing.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "accounts.Login"

	account, err := s.repomanager.Accounts(s.db).GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.VerifyDummy(password)
			return "", common.NewError(op, common.ErrUnauthenticated, msgBadCredentials)
		}
		return "", common.WrapError(op, common.ErrInternal, "", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return "", common.NewError(op, common.ErrUnauthenticated, msgBadCredentials)
	}

	token, err := s.issuer.Issue(auth.Claim{SubjectID: account.ID, Username: account.Username}, s.tokenTTL)
	if err != nil {
		return "", common.WrapError(op, common.ErrInternal, "", err)
	}
	return token, nil
}

// WhoAmI resolves a bearer token to the account it was issued for.
func (s *AccountService) WhoAmI(ctx context.Context, token string) (*models.Account, error) {
	const op = "accounts.WhoAmI"

	if token == "" {
		return nil, common.NewError(op, common.ErrUnauthenticated, msgMissingToken)
	}

	claim, err := s.issuer.Verify(token)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, common.WrapError(op, common.ErrUnauthenticated, msgTokenExpired, err)
		}
		return nil, common.WrapError(op, common.ErrUnauthenticated, msgInvalidToken, err)
	}

	account, err := s.repomanager.Accounts(s.db).GetByID(ctx, claim.SubjectID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(op, common.ErrNotFound, msgAccountNotFound)
		}
		return nil, common.WrapError(op, common.ErrInternal, "", err)
	}
	return account, nil
}

// UpdateProfile replaces username and email of account id and returns the
// row as committed.
func (s *AccountService) UpdateProfile(ctx context.Context, id, username, email string) (*models.Account, error) {
	const op = "accounts.UpdateProfile"

	if common.Blank(id) || common.Blank(username) || common.Blank(email) {
		return nil, common.NewError(op, common.ErrInvalidArgument, msgProfileFields)
	}

	var updated *models.Account
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		a, err := s.repomanager.Accounts(tx).UpdateProfile(ctx, id, strings.TrimSpace(username), strings.TrimSpace(email))
		if err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrDuplicateKey):
			return nil, common.WrapError(op, common.ErrAlreadyExists, msgAlreadyExists, err)
		case errors.Is(err, common.ErrNotFound):
			return nil, common.NewError(op, common.ErrNotFound, msgAccountNotFound)
		default:
			return nil, common.WrapError(op, common.ErrInternal, "", err)
		}
	}
	return updated, nil
}

// ListAccounts returns every account ordered by username.
func (s *AccountService) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	const op = "accounts.ListAccounts"

	all, err := s.repomanager.Accounts(s.db).ListAll(ctx)
	if err != nil {
		return nil, common.WrapError(op, common.ErrInternal, "", err)
	}
	return all, nil
}
