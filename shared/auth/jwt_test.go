package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	authenticator := NewJWTAuthenticator("test-secret", "glowcart", "glowcart")

	tokenStr, err := authenticator.GenerateSessionToken("user-1", true, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := authenticator.ValidateSessionToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.True(t, claims.IsAdmin)
}

func TestSessionTokenExpired(t *testing.T) {
	authenticator := NewJWTAuthenticator("test-secret", "glowcart", "glowcart")

	tokenStr, err := authenticator.GenerateSessionToken("user-1", false, -time.Minute)
	require.NoError(t, err)

	_, err = authenticator.ValidateSessionToken(tokenStr)
	assert.Error(t, err)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	signer := NewJWTAuthenticator("signing-secret", "glowcart", "glowcart")
	verifier := NewJWTAuthenticator("other-secret", "glowcart", "glowcart")

	tokenStr, err := signer.GenerateSessionToken("user-1", false, time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateSessionToken(tokenStr)
	assert.Error(t, err)
}

func TestSessionTokenGarbage(t *testing.T) {
	authenticator := NewJWTAuthenticator("test-secret", "glowcart", "glowcart")

	_, err := authenticator.ValidateSessionToken("not-a-token")
	assert.Error(t, err)
}
