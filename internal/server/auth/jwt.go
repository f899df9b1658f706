// Package auth issues and verifies the signed bearer tokens handed out on
// login. Tokens are stateless HS256 JWTs; nothing is stored server-side.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/idkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claim is what a token asserts about its bearer.
type Claim struct {
	SubjectID string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// tokenClaims is the JWT payload: registered claims (sub, iat, exp) plus the
// username.
type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Issuer signs and verifies tokens with one process-wide secret.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

type Option func(*Issuer)

// WithClock replaces time.Now for both issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

func NewIssuer(secret []byte, opts ...Option) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is empty")
	}
	i := &Issuer{secret: secret, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Issue signs a token for c.SubjectID and c.Username valid for ttl from now.
// IssuedAt and ExpiresAt of c are ignored and set from the clock.
func (i *Issuer) Issue(c Claim, ttl time.Duration) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: c.Username,
	})

	s, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Verify checks signature, algorithm and expiry. A correctly signed token
// past its expiry yields common.ErrTokenExpired; anything else that fails
// yields common.ErrInvalidToken.
func (i *Issuer) Verify(token string) (*Claim, error) {
	tc := &tokenClaims{}

	_, err := jwt.ParseWithClaims(token, tc, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", common.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if tc.Subject == "" {
		return nil, fmt.Errorf("%w: no subject", common.ErrInvalidToken)
	}

	c := &Claim{SubjectID: tc.Subject, Username: tc.Username}
	if tc.IssuedAt != nil {
		c.IssuedAt = tc.IssuedAt.Time
	}
	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}
	return c, nil
}
