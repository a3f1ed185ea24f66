package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(CodeLength)
	require.NoError(t, err)
	require.Len(t, code, CodeLength)

	for _, r := range code {
		assert.GreaterOrEqual(t, r, '0')
		assert.LessOrEqual(t, r, '9')
	}
}

func TestGenerateCodeVaries(t *testing.T) {
	seen := make(map[string]bool)
	for range 20 {
		code, err := GenerateCode(CodeLength)
		require.NoError(t, err)
		seen[code] = true
	}

	// Collisions in 20 draws of a 6-digit code are possible but vanishingly
	// unlikely; a single repeated value for every draw would mean a broken
	// generator.
	assert.Greater(t, len(seen), 1)
}
