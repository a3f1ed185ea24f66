package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Abcdef1!")
	require.NoError(t, err)

	assert.NotEqual(t, "Abcdef1!", hash)
	assert.Contains(t, hash, "$argon2id$")
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Abcdef1!")
	require.NoError(t, err)

	ok, err := VerifyPassword("Abcdef1!", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	first, err := HashPassword("Abcdef1!")
	require.NoError(t, err)

	second, err := HashPassword("Abcdef1!")
	require.NoError(t, err)

	// Salts are random, so the encoded hashes must differ.
	assert.NotEqual(t, first, second)
}
