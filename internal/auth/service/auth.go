package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/soomhq/soom-auth/internal/auth/domain"
	"github.com/soomhq/soom-auth/internal/auth/store"
	"github.com/soomhq/soom-auth/pkg/cryptox"
	"github.com/soomhq/soom-auth/pkg/httpx"
	"github.com/soomhq/soom-auth/pkg/idx"
	"github.com/soomhq/soom-auth/pkg/jwtx"
	"github.com/soomhq/soom-auth/pkg/slogx"
)

var (
	ErrInvalidCredentials  = errors.New("invalid_credentials")
	ErrAccountInactive     = errors.New("account_inactive")
	ErrMissingRefreshToken = errors.New("missing_refresh_token")
	ErrInvalidRefreshToken = errors.New("invalid_refresh_token")
	ErrRefreshTokenExpired = errors.New("refresh_token_expired")
	ErrUserNotFound        = errors.New("user_not_found")
)

// AuthService owns the credential and session lifecycle: password login,
// refresh token rotation, logout, and identity lookup for authenticated
// requests.
type AuthService struct {
	Store      store.Store
	Codec      *jwtx.Codec
	RefreshTTL time.Duration
}

// Login verifies the email/password pair and opens a new session.
//
// Unknown emails and wrong passwords are indistinguishable to the caller.
// The refresh token is returned in its opaque form exactly once; only its
// fingerprint is persisted.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("login failed, unknown email", slog.String("email", email))
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("login failed, wrong password", slog.String("user_id", user.ID.String()))
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, err
	}

	if !user.Active {
		l.Info("login rejected, inactive account", slog.String("user_id", user.ID.String()))
		return domain.Session{}, ErrAccountInactive
	}

	session, err := s.openSession(ctx, user, now)
	if err != nil {
		return domain.Session{}, err
	}

	l.Info("login succeeded",
		slog.String("user_id", user.ID.String()),
		slog.String("role", user.Role),
	)
	return session, nil
}

// Refresh rotates a refresh token: the presented token is consumed and a
// fresh access/refresh pair is issued. A token that has already been
// rotated (or revoked) is rejected, which also catches replays.
func (s *AuthService) Refresh(ctx context.Context, refreshOpaque string) (domain.Session, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)

	if strings.TrimSpace(refreshOpaque) == "" {
		return domain.Session{}, ErrMissingRefreshToken
	}

	fp := cryptox.FingerprintToken(refreshOpaque)

	rt, err := s.Store.RefreshTokens().GetRefreshTokenByHash(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrInvalidRefreshToken
		}
		return domain.Session{}, err
	}

	if rt.ExpiredAt(now) {
		// Dead record; remove it eagerly rather than waiting for housekeeping.
		if _, err := s.Store.RefreshTokens().DeleteRefreshTokenByHash(ctx, fp); err != nil {
			l.Error("failed to delete expired refresh token", slog.Any("error", err))
		}
		return domain.Session{}, ErrRefreshTokenExpired
	}

	user, err := s.Store.Users().GetUserByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrUserNotFound
		}
		return domain.Session{}, err
	}
	if !user.Active {
		return domain.Session{}, ErrAccountInactive
	}

	accessToken, err := s.Codec.Issue(user.Email, user.Role, user.ID.String(), now)
	if err != nil {
		return domain.Session{}, err
	}

	newOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.Session{}, err
	}

	newRT := domain.RefreshToken{
		ID:        idx.New(),
		UserID:    user.ID,
		TokenHash: cryptox.FingerprintToken(newOpaque),
		ExpiresAt: now.Add(s.RefreshTTL),
	}

	// Consume the old token and persist the replacement atomically. If a
	// concurrent refresh already consumed it, the delete reports no match
	// and the whole rotation is rejected.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		matched, err := tx.RefreshTokens().DeleteRefreshTokenByHash(ctx, fp)
		if err != nil {
			return err
		}
		if !matched {
			return ErrInvalidRefreshToken
		}
		return tx.RefreshTokens().CreateRefreshToken(ctx, newRT)
	})
	if err != nil {
		return domain.Session{}, err
	}

	l.Info("refresh token rotated", slog.String("user_id", user.ID.String()))

	return domain.Session{
		AccessToken:  accessToken,
		RefreshToken: newOpaque,
		RefreshTTL:   s.RefreshTTL,
		User:         user.Public(),
	}, nil
}

// Logout revokes the presented refresh token. Revoking a token that no
// longer exists is not an error, so repeated logouts succeed.
func (s *AuthService) Logout(ctx context.Context, refreshOpaque string) error {
	if strings.TrimSpace(refreshOpaque) == "" {
		return nil
	}

	fp := cryptox.FingerprintToken(refreshOpaque)
	matched, err := s.Store.RefreshTokens().DeleteRefreshTokenByHash(ctx, fp)
	if err != nil {
		return err
	}
	if matched {
		slogx.FromContext(ctx).Info("refresh token revoked on logout")
	}
	return nil
}

// RevokeAllSessions drops every refresh token a user holds. Access tokens
// already in the wild stay valid until they expire.
func (s *AuthService) RevokeAllSessions(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.Store.RefreshTokens().DeleteAllUserRefreshTokens(ctx, userID)
}

// CurrentUser returns the public profile for an authenticated subject.
func (s *AuthService) CurrentUser(ctx context.Context, email string) (domain.PublicUser, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicUser{}, ErrUserNotFound
		}
		return domain.PublicUser{}, err
	}
	return user.Public(), nil
}

// ResolveIdentity maps an access token subject to a request identity. It
// backs the authentication middleware, so a stale subject (deleted or
// deactivated user) resolves to an error and the request stays anonymous.
func (s *AuthService) ResolveIdentity(ctx context.Context, email string) (httpx.Identity, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httpx.Identity{}, ErrUserNotFound
		}
		return httpx.Identity{}, err
	}
	if !user.Active {
		return httpx.Identity{}, ErrAccountInactive
	}

	return httpx.Identity{
		UserID:      user.ID.String(),
		Email:       user.Email,
		Role:        user.Role,
		Authorities: []string{"ROLE_" + strings.ToUpper(user.Role)},
	}, nil
}

func (s *AuthService) openSession(ctx context.Context, user domain.User, now time.Time) (domain.Session, error) {
	accessToken, err := s.Codec.Issue(user.Email, user.Role, user.ID.String(), now)
	if err != nil {
		return domain.Session{}, err
	}

	refreshOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.Session{}, err
	}

	rt := domain.RefreshToken{
		ID:        idx.New(),
		UserID:    user.ID,
		TokenHash: cryptox.FingerprintToken(refreshOpaque),
		ExpiresAt: now.Add(s.RefreshTTL),
	}
	if err := s.Store.RefreshTokens().CreateRefreshToken(ctx, rt); err != nil {
		return domain.Session{}, err
	}

	return domain.Session{
		AccessToken:  accessToken,
		RefreshToken: refreshOpaque,
		RefreshTTL:   s.RefreshTTL,
		User:         user.Public(),
	}, nil
}
