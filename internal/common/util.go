package common

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// RandomHex returns size random bytes encoded as hex (2*size characters).
func RandomHex(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Wipe zeroes b in place. Used on password buffers read from a terminal.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Blank reports whether s is empty after trimming whitespace.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
