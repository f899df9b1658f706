// Package cryptox hashes and verifies account passwords with bcrypt.
package cryptox

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/idkeeper/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned by Hash for passwords bcrypt cannot take
// (more than 72 bytes).
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// Hasher produces salted bcrypt hashes. The salt and cost travel inside the
// hash string, so Verify needs nothing but the stored value.
type Hasher struct {
	cost  int
	dummy []byte
}

// NewHasher returns a Hasher with the given bcrypt cost.
func NewHasher(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	// Random plaintext nobody knows; only used to spend the time of a real
	// comparison.
	pw, err := common.RandomHex(16)
	if err != nil {
		return nil, err
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return nil, err
	}

	return &Hasher{cost: cost, dummy: dummy}, nil
}

func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether password matches hash. A malformed hash never
// matches.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// VerifyDummy burns one comparison against a throwaway hash so callers can
// make the "no such account" path as slow as a wrong password.
func (h *Hasher) VerifyDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
}
