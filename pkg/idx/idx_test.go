package idx_test

import (
	"testing"
	"time"

	"github.com/soomhq/soom-auth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewProducesValidIDs(t *testing.T) {
	t.Parallel()

	a := idx.New()
	b := idx.New()

	require.False(t, a.IsZero())
	require.False(t, b.IsZero())
	require.NotEqual(t, a, b)

	parsed, err := idx.Parse(a.String())
	require.NoError(t, err)
	require.Equal(t, a, parsed)
}

func TestIDsAreSortableByTime(t *testing.T) {
	t.Parallel()

	earlier := idx.NewAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	later := idx.NewAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	require.Less(t, earlier.String(), later.String())
	require.True(t, earlier.Time().Before(later.Time()))
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "   ", "not-a-ulid", "0123"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid)
	}
}

func TestMustParsePanicsOnInvalid(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { idx.MustParse("nope") })
}
