package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestHasher_HashAndVerify(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", hash, "hash must not be the plaintext")
	assert.True(t, strings.HasPrefix(hash, "$2a$04$"), "cost must be embedded, got %q", hash)
	assert.True(t, h.Verify("correct horse", hash))
	assert.False(t, h.Verify("wrong horse", hash))
}

func TestHasher_SaltedPerCall(t *testing.T) {
	h := newTestHasher(t)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("same", a))
	assert.True(t, h.Verify("same", b))
}

func TestHasher_VerifyMalformedHash(t *testing.T) {
	h := newTestHasher(t)
	assert.False(t, h.Verify("pw", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("pw", ""))
}

func TestHasher_VerifyAcrossCosts(t *testing.T) {
	h4 := newTestHasher(t)
	h5, err := NewHasher(bcrypt.MinCost + 1)
	require.NoError(t, err)

	hash, err := h5.Hash("pw")
	require.NoError(t, err)
	assert.True(t, h4.Verify("pw", hash), "cost is read from the hash itself")
}

func TestHasher_PasswordTooLong(t *testing.T) {
	h := newTestHasher(t)
	_, err := h.Hash(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestNewHasher_CostRange(t *testing.T) {
	_, err := NewHasher(bcrypt.MinCost - 1)
	assert.Error(t, err)
	_, err = NewHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}

func TestHasher_VerifyDummy(t *testing.T) {
	h := newTestHasher(t)
	assert.NotPanics(t, func() { h.VerifyDummy("anything") })
}
