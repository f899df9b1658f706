// Package common defines shared constants and sentinel errors used across
// client and server layers of idkeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Error kinds surfaced to callers. Every service failure carries exactly
	// one of them.
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAlreadyExists   = errors.New("already exists")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
	ErrInternal        = errors.New("internal error")

	// Repository-level errors.
	ErrDuplicateKey = errors.New("duplicate key")

	// Token errors (invalid or malformed vs. correctly signed but stale).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Transport-level errors.
	ErrMissingToken            = errors.New("missing token")
	ErrInvalidAuthHeaderFormat = errors.New("invalid auth header format")
)
