// Package store defines the data access contracts for the auth service.
// Concrete drivers live under drivers/.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/soomhq/soom-auth/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. It exposes sub-repositories to
// keep concerns tidy and testable.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rollback when fn errors,
	// commit otherwise. Refresh rotation relies on this being atomic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a non-deleted user by id.
	GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetUserByEmail is the login lookup. Soft-deleted rows are invisible.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user. The id is assigned by the caller.
	CreateUser(ctx context.Context, u domain.User) error

	// SetUserActive flips the active flag and bumps updated_at.
	SetUserActive(ctx context.Context, id uuid.UUID, active bool) error

	// IsEmpty reports whether any user exists; used by the startup seed.
	IsEmpty(ctx context.Context) (bool, error)
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record. A fingerprint
	// collision surfaces as ErrAlreadyExists (retryable).
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the record for a token fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// DeleteRefreshTokenByHash deletes-if-present and reports whether a
	// row matched. Rotation depends on this being atomic: of two
	// concurrent deletes for the same fingerprint exactly one observes
	// matched=true.
	DeleteRefreshTokenByHash(ctx context.Context, hash string) (bool, error)

	// DeleteAllUserRefreshTokens removes every token owned by a user
	// (logout-everywhere, account deletion) and returns how many rows
	// were removed.
	DeleteAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) (int64, error)

	// DeleteExpiredRefreshTokens is housekeeping for sessions that never
	// come back to refresh. Tokens expiring at or before now are removed.
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}
