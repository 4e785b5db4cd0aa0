package persist

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fintrack.db")
	s, err := NewSQLite(path, DefaultKey)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	_, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "fresh database should report absent blob")

	blob := []byte(`[{"id":"txn_1"}]`)
	require.NoError(t, s.Save(ctx, blob))

	got, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, blob, got)
}

func TestSQLiteUpsert(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []byte("first")))
	require.NoError(t, s.Save(ctx, []byte("second")))

	got, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("second"), got)
}

func TestSQLiteKeysAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fintrack.db")
	ctx := context.Background()

	a, err := NewSQLite(path, "keyA")
	require.NoError(t, err)
	defer a.Close()

	b, err := NewSQLite(path, "keyB")
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Save(ctx, []byte("blobA")))

	_, ok, err := b.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "different key must not see the blob")
}
