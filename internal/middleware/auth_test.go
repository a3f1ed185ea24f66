package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowcart/glowcart-api/shared/auth"
)

func newTestAuthenticator() auth.JWTAuthenticator {
	return auth.NewJWTAuthenticator("test-secret", "glowcart-api", "glowcart-api")
}

func claimsEcho(t *testing.T) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)

		w.Header().Set("X-User-ID", claims.UserID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	jwtAuth := newTestAuthenticator()
	handler := RequireAuth(jwtAuth)(claimsEcho(t))

	token, err := jwtAuth.GenerateSessionToken("user-1", false, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Header().Get("X-User-ID"))
}

func TestRequireAuthRejectsBadTokens(t *testing.T) {
	jwtAuth := newTestAuthenticator()
	handler := RequireAuth(jwtAuth)(claimsEcho(t))

	expired, err := jwtAuth.GenerateSessionToken("user-1", false, -time.Minute)
	require.NoError(t, err)

	otherIssuer := auth.NewJWTAuthenticator("test-secret", "someone-else", "someone-else")
	foreign, err := otherIssuer.GenerateSessionToken("user-1", false, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-token"},
		{name: "expired token", header: "Bearer " + expired},
		{name: "wrong issuer", header: "Bearer " + foreign},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	jwtAuth := newTestAuthenticator()
	handler := RequireAdmin(jwtAuth)(claimsEcho(t))

	adminToken, err := jwtAuth.GenerateSessionToken("admin-1", true, time.Hour)
	require.NoError(t, err)

	userToken, err := jwtAuth.GenerateSessionToken("user-1", false, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
