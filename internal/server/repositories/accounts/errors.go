package accounts

import (
	"strings"

	"github.com/dmitrijs2005/idkeeper/internal/common"
)

// DuplicateKeyError reports which unique column rejected a write:
// "username", "email", "id" or "unique" when it cannot be told.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return common.ErrDuplicateKey.Error() + ": " + e.Field
}

func (e *DuplicateKeyError) Unwrap() error { return common.ErrDuplicateKey }

// fieldFromText guesses the column from a constraint name or driver message.
func fieldFromText(s string) string {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "username"):
		return "username"
	case strings.Contains(s, "email"):
		return "email"
	case strings.Contains(s, "pkey"), strings.Contains(s, "accounts.id"):
		return "id"
	default:
		return "unique"
	}
}
