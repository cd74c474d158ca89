package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soomhq/soom-auth/internal/auth/domain"
	"github.com/soomhq/soom-auth/internal/auth/store"
	"github.com/soomhq/soom-auth/internal/auth/store/drivers/sqlite"
)

func newSeedFixture(t *testing.T) (*SeedService, store.Store) {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	return &SeedService{Store: s}, s
}

func TestEnsureSeedUserCreatesAdmin(t *testing.T) {
	svc, s := newSeedFixture(t)
	ctx := context.Background()

	err := svc.EnsureSeedUser(ctx, SeedUser{
		Email:    "Admin@Example.com",
		Name:     "Admin",
		Password: "seed-password",
	})
	require.NoError(t, err)

	u, err := s.Users().GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.True(t, u.Active)
	assert.NotEqual(t, "seed-password", u.PasswordHash)
}

func TestEnsureSeedUserSkipsPopulatedDatabase(t *testing.T) {
	svc, s := newSeedFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureSeedUser(ctx, SeedUser{Email: "first@example.com", Password: "pw"}))
	require.NoError(t, svc.EnsureSeedUser(ctx, SeedUser{Email: "second@example.com", Password: "pw"}))

	_, err := s.Users().GetUserByEmail(ctx, "second@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEnsureSeedUserUnconfigured(t *testing.T) {
	svc, s := newSeedFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureSeedUser(ctx, SeedUser{}))

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)
}
