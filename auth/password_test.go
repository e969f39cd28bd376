package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func fastHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.MinCost}
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := fastHasher()

	digest, err := h.Hash("engine1843")
	require.NoError(t, err)
	assert.NotEqual(t, "engine1843", digest)

	assert.True(t, h.Verify("engine1843", digest))
	assert.False(t, h.Verify("engine1844", digest))
}

func TestBcryptHasherSaltsEveryDigest(t *testing.T) {
	h := fastHasher()

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestBcryptHasherVerifyFailsClosed(t *testing.T) {
	h := fastHasher()

	for _, digest := range []string{"", "not-a-bcrypt-digest", "$2a$04$short"} {
		assert.NotPanics(t, func() {
			assert.False(t, h.Verify("anything", digest))
		})
	}
}

func TestBcryptHasherRejectsEmptyPassword(t *testing.T) {
	_, err := fastHasher().Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestNewBcryptHasherEnforcesMinimumCost(t *testing.T) {
	assert.Equal(t, MinBcryptCost, NewBcryptHasher(4).cost)
	assert.Equal(t, 13, NewBcryptHasher(13).cost)

	digest, err := NewBcryptHasher(0).Hash("engine1843")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, MinBcryptCost, cost)
}
