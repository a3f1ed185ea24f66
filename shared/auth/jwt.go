package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of a session token: the user it belongs to
// and whether that user holds the admin role.
type SessionClaims struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// JWTAuthenticator signs and verifies HS256 session tokens.
type JWTAuthenticator struct {
	secret   string
	audience string
	issuer   string
}

// NewJWTAuthenticator creates a new JWTAuthenticator instance.
func NewJWTAuthenticator(secret, audience, issuer string) JWTAuthenticator {
	return JWTAuthenticator{
		secret:   secret,
		audience: audience,
		issuer:   issuer,
	}
}

// GenerateSessionToken issues a signed session token for the given user.
// Every token carries an expiry; there is no non-expiring issuance path.
func (a *JWTAuthenticator) GenerateSessionToken(userID string, isAdmin bool, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    a.issuer,
			Audience:  jwt.ClaimStrings{a.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenStr, err := token.SignedString([]byte(a.secret))
	if err != nil {
		return "", err
	}

	return tokenStr, nil
}

// ValidateSessionToken verifies the signature and expiry of a session token
// and returns its claims. Any failure yields a non-nil error.
func (a *JWTAuthenticator) ValidateSessionToken(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(a.secret), nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithAudience(a.audience),
		jwt.WithIssuer(a.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
