package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasherCost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want int
	}{
		{in: 12, want: 12},
		{in: bcrypt.MinCost, want: bcrypt.MinCost},
		{in: 0, want: DefaultBcryptCost},
		{in: 3, want: DefaultBcryptCost},
		{in: 32, want: DefaultBcryptCost},
	}
	for _, tc := range tests {
		tc := tc
		assert.Equal(t, tc.want, NewBcryptHasher(tc.in).Cost(), "cost %d", tc.in)
	}
}

// The stored form never equals the plaintext, verifies against the
// plaintext, and rejects a wrong guess.
func TestBcryptHasherProductionCost(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(DefaultBcryptCost)
	hashed, err := h.Hash("horta-secreta")
	require.NoError(t, err)

	assert.NotEqual(t, "horta-secreta", hashed)
	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, 12, cost)

	assert.NoError(t, h.Compare(hashed, "horta-secreta"))
	assert.ErrorIs(t, h.Compare(hashed, "horta-errada"), ErrPasswordMismatch)
}

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	passwords := []string{"123456", "senha com espaços", strings.Repeat("x", 72), "ção-ü-€"}

	for _, pw := range passwords {
		hashed, err := h.Hash(pw)
		require.NoError(t, err)
		assert.NotEqual(t, pw, hashed)
		assert.NoError(t, h.Compare(hashed, pw))
		assert.ErrorIs(t, h.Compare(hashed, pw+"!"), ErrPasswordMismatch)
	}
}

func TestBcryptHasherSaltsEachHash(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	first, err := h.Hash("same-password")
	require.NoError(t, err)
	second, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasherErrors(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("x", 73))
	assert.Error(t, err, "bcrypt refuses inputs longer than 72 bytes")

	err = h.Compare("not-a-bcrypt-hash", "whatever")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}
