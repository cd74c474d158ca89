package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/soomhq/soom-auth/pkg/idx"
)

// RefreshToken models a stored refresh token record. Its presence (and an
// expiry in the future) is the evidence of an active session; rotation
// deletes the row the moment the token is used.
type RefreshToken struct {
	ID        idx.ID
	UserID    uuid.UUID
	TokenHash string // SHA-256 fingerprint of the opaque value, base64url
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExpiredAt reports whether the record is past its expiry at the given
// instant.
func (t RefreshToken) ExpiredAt(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Session is what a successful login or refresh hands back to the HTTP
// boundary: the signed access token for the response body, the opaque
// refresh token for the cookie, and the public profile.
type Session struct {
	AccessToken  string
	RefreshToken string // opaque value, never persisted as-is
	RefreshTTL   time.Duration
	User         PublicUser
}
