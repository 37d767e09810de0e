package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_LinkAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	sess, err := s.Link(ctx, "abc", "0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, "abc", sess.ID)
	assert.True(t, sess.Linked())
	assert.False(t, sess.CreatedAt.IsZero())

	sess, err = s.Link(ctx, "abc", "0x2222222222222222222222222222222222222222")
	require.NoError(t, err)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", sess.WalletAddress)
}

func TestSQLiteStore_Unlink(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Link(ctx, "abc", "0x1111111111111111111111111111111111111111")
	require.NoError(t, err)

	require.NoError(t, s.Unlink(ctx, "abc"))
	require.NoError(t, s.Unlink(ctx, "abc"))
	require.NoError(t, s.Unlink(ctx, "unknown"))

	sess, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, sess.Linked())
}

func TestSQLiteStore_StatsAndExpiry(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	old := time.Now().Add(-48 * time.Hour)
	s.now = func() time.Time { return old }
	_, err := s.Link(ctx, "old", "0x1111111111111111111111111111111111111111")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Link(ctx, "new", "0x2222222222222222222222222222222222222222")
	require.NoError(t, err)
	require.NoError(t, s.Unlink(ctx, "new"))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 2, Linked: 1}, stats)

	removed, err := s.DeleteExpired(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	stats, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 1, Linked: 0}, stats)
}
