package persist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "transactions.json")
	f, err := NewJSONFile(path)
	require.NoError(t, err)

	ctx := context.Background()

	// Fresh file reports absent, not an error.
	_, ok, err := f.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	blob := []byte(`[{"id":"txn_1"}]`)
	require.NoError(t, f.Save(ctx, blob))

	got, ok, err := f.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, blob, got)
}

func TestJSONFileSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.json")
	f, err := NewJSONFile(path)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, f.Save(ctx, []byte("first")))
	require.NoError(t, f.Save(ctx, []byte("second")))

	got, ok, err := f.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("second"), got)

	// No temp file left behind after the rename.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestJSONFileCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c", "transactions.json")
	_, err := NewJSONFile(path)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
