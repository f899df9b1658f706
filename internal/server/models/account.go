package models

import "time"

// Account is a stored identity. PasswordHash is an opaque bcrypt string and
// never leaves the server.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
