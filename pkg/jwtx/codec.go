// Package jwtx signs and verifies the service's HS256 access tokens.
//
// Tokens are self-contained: verification is pure local computation with
// no store lookup, which is why they are short-lived. Callers must not
// surface to clients whether a token failed on signature, structure, or
// expiry; Decode collapses all three into ErrInvalidToken.
package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinKeyBytes is the minimum accepted HMAC key length. HS256 keys shorter
// than the hash output weaken the MAC.
const MinKeyBytes = 32

var (
	// ErrInvalidToken covers signature mismatch, malformed structure, and
	// expired tokens alike.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	// ErrKeyTooShort reports an HS256 signing key below MinKeyBytes.
	ErrKeyTooShort = errors.New("jwtx: signing key too short")
)

// Codec issues and verifies HS256-signed access tokens with a server-held
// symmetric key.
type Codec struct {
	key    []byte
	issuer string
	ttl    time.Duration
}

// NewCodec builds a Codec. ttl <= 0 falls back to DefaultAccessTokenTTL.
func NewCodec(key []byte, issuer string, ttl time.Duration) (*Codec, error) {
	if len(key) < MinKeyBytes {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrKeyTooShort, len(key), MinKeyBytes)
	}
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	return &Codec{key: key, issuer: issuer, ttl: ttl}, nil
}

// TTL returns the configured access token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue signs a token for the given identity with iat=now and
// exp=now+TTL.
func (c *Codec) Issue(subject, role, userID string, now time.Time) (string, error) {
	claims := NewAccessClaims(subject, role, userID, c.issuer, c.ttl, now)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature and time bounds and returns the claims.
// Every failure mode maps to ErrInvalidToken.
func (c *Codec) Decode(tokenString string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	if c.issuer != "" && claims.Issuer != c.issuer {
		return Claims{}, fmt.Errorf("%w: issuer mismatch", ErrInvalidToken)
	}
	return claims, nil
}

// ExtractSubject decodes the token and returns its subject (the user's
// email). Fails exactly like Decode.
func (c *Codec) ExtractSubject(tokenString string) (string, error) {
	claims, err := c.Decode(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
