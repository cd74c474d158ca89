package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/soomhq/soom-auth/internal/auth/domain"
	"github.com/soomhq/soom-auth/pkg/idx"
)

type refreshTokensRepo struct {
	db dbtx
}

const refreshTokenColumns = `id, user_id, token_hash, expires_at, created_at, updated_at`

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (`+refreshTokenColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID.String(),
		t.UserID.String(),
		t.TokenHash,
		t.ExpiresAt.UTC(),
		t.CreatedAt,
		t.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *refreshTokensRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+refreshTokenColumns+` FROM refresh_tokens WHERE token_hash = ?`,
		hash,
	)

	var (
		t         domain.RefreshToken
		rawID     string
		rawUserID string
	)
	err := row.Scan(
		&rawID,
		&rawUserID,
		&t.TokenHash,
		&t.ExpiresAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}

	t.ID, err = idx.Parse(rawID)
	if err != nil {
		return domain.RefreshToken{}, err
	}
	t.UserID, err = uuid.Parse(rawUserID)
	if err != nil {
		return domain.RefreshToken{}, err
	}
	return t, nil
}

// DeleteRefreshTokenByHash removes a single token record and reports whether
// it existed. Rotation relies on the reported match to detect replays of an
// already rotated token.
func (r *refreshTokensRepo) DeleteRefreshTokenByHash(ctx context.Context, hash string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE token_hash = ?`,
		hash,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *refreshTokensRepo) DeleteAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE user_id = ?`,
		userID.String(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= ?`,
		now.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
