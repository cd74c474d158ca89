package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/soomhq/soom-auth/internal/auth/domain"
	"github.com/soomhq/soom-auth/internal/auth/store"
	"github.com/soomhq/soom-auth/pkg/cryptox"
	"github.com/soomhq/soom-auth/pkg/slogx"
)

// SeedUser describes the initial account created on an empty database so
// the service is usable straight after first boot.
type SeedUser struct {
	Email    string
	Name     string
	Password string
	Role     string
}

type SeedService struct {
	Store store.Store
}

// EnsureSeedUser creates the configured seed account when the user table
// is empty. On a populated database it does nothing, so restarts are safe.
func (s *SeedService) EnsureSeedUser(ctx context.Context, seed SeedUser) error {
	l := slogx.FromContext(ctx)

	if seed.Email == "" || seed.Password == "" {
		l.Debug("seed user not configured, skipping")
		return nil
	}

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	passHash, err := cryptox.HashPassword(seed.Password)
	if err != nil {
		return err
	}

	role := seed.Role
	if role == "" {
		role = domain.RoleAdmin
	}

	user := domain.User{
		ID:           uuid.New(),
		Email:        strings.TrimSpace(strings.ToLower(seed.Email)),
		Name:         seed.Name,
		PasswordHash: passHash,
		Role:         role,
		Active:       true,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		// A racing replica may have created it first.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil
		}
		return err
	}

	l.Info("seed user created",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email),
		slog.String("role", user.Role),
	)
	return nil
}
