package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/glowcart/glowcart-api/shared/auth"
	"github.com/glowcart/glowcart-api/shared/httpx"
)

type contextKey struct{}

var userClaimsKey = contextKey{}

// ClaimsFromContext returns the session claims attached by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*auth.SessionClaims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*auth.SessionClaims)
	return claims, ok
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// token's claims to the request context.
func RequireAuth(jwtAuth auth.JWTAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := validateBearer(jwtAuth, r)
			if !ok {
				httpx.Fail(w, http.StatusUnauthorized, "Not authenticated!")
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin behaves like RequireAuth and additionally rejects tokens
// without the admin flag.
func RequireAdmin(jwtAuth auth.JWTAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := validateBearer(jwtAuth, r)
			if !ok {
				httpx.Fail(w, http.StatusUnauthorized, "Not authenticated!")
				return
			}

			if !claims.IsAdmin {
				httpx.Fail(w, http.StatusForbidden, "Permission denied")
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validateBearer(jwtAuth auth.JWTAuthenticator, r *http.Request) (*auth.SessionClaims, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, false
	}

	claims, err := jwtAuth.ValidateSessionToken(parts[1])
	if err != nil {
		return nil, false
	}

	return claims, true
}
