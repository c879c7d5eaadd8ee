package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/eventtix/eventtix/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie the server sets on login.
const CookieName = "token"

// Claims carries the authenticated user id inside the signed token.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256-signed session tokens. Verification
// is pure: given the secret and the token string it performs no I/O, and the
// server keeps no record of issued tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager constructs a TokenManager from the server-held secret and
// the session validity window.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt expiration must be positive")
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}, nil
}

// Issue produces a signed token embedding the user id and an expiry.
func (m *TokenManager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify validates the signature and expiry of a token and returns the user
// id it was issued for. Any failure — missing, malformed, tampered, or
// expired — comes back as model.ErrUnauthorized.
func (m *TokenManager) Verify(tokenStr string) (string, error) {
	if tokenStr == "" {
		return "", model.ErrUnauthorized
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", model.ErrUnauthorized
	}
	return claims.UserID, nil
}

// SessionCookie wraps a signed token in an HTTP-only cookie bounded by the
// same validity window as the token itself.
func (m *TokenManager) SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(m.ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearedCookie produces a cookie that overwrites and expires the client's
// session cookie. Logout is stateless: no server-side revocation record.
func (m *TokenManager) ClearedCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
