package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoPrincipal is returned when an operation that requires an
// authenticated user is invoked without one.
var ErrNoPrincipal = errors.New("no authenticated principal")

// Principal identifies the authenticated user an operation acts for.
// It is passed explicitly to every call that needs one; nothing in the
// application reads ambient auth state.
type Principal struct {
	UserID string
	Email  string
}

// Valid reports whether the principal identifies a user.
func (p Principal) Valid() bool {
	return p.UserID != ""
}

// Claims is the JWT payload carried by client tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// MintToken issues a signed HS256 token for the principal.
func MintToken(secret string, p Principal, ttl time.Duration) (string, error) {
	if !p.Valid() {
		return "", ErrNoPrincipal
	}

	now := time.Now()
	claims := Claims{
		UserID: p.UserID,
		Email:  p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a signed token and returns the principal it
// identifies. Expired or tampered tokens fail verification.
func VerifyToken(secret, tokenStr string) (Principal, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Principal{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Principal{}, errors.New("invalid token claims")
	}

	return Principal{UserID: claims.UserID, Email: claims.Email}, nil
}
