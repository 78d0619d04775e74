package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	passwords := []string{"secret", "correct horse battery staple", "pässwörd", " "}

	for _, p := range passwords {
		hash, err := HashPassword(p)
		require.NoError(t, err)
		assert.NotEqual(t, p, hash)
		assert.True(t, CheckPassword(hash, p), "password %q should verify", p)
	}
}

func TestCheckPasswordRejectsOtherPassword(t *testing.T) {
	hash, err := HashPassword("alpha")
	require.NoError(t, err)

	assert.False(t, CheckPassword(hash, "beta"))
	assert.False(t, CheckPassword(hash, ""))
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "alpha"))
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	h1, err := HashPassword("same")
	require.NoError(t, err)
	h2, err := HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}
