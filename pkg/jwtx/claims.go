package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Short access tokens keep validation local; the
// revocation burden sits on the store-tracked refresh tokens.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims are the access-token claims. Subject carries the user's email;
// the custom fields mirror what handlers need without a store lookup.
type Claims struct {
	jwt.RegisteredClaims

	// Role of the authenticated user ("user", "admin").
	Role string `json:"role,omitempty"`

	// UserID is the user's stable id; Subject holds the email, which can
	// change, so both travel in the token.
	UserID string `json:"userId,omitempty"`
}

// NewAccessClaims builds minimally-correct claims for an access token.
func NewAccessClaims(subject, role, userID, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:   role,
		UserID: userID,
	}
}
