package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snapshot.json")
	fs, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = fs.Read(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, fs.Write(context.Background(), []byte(`{"version":1}`)))

	data, err := fs.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":1}`), data)
}

func TestFileStoreOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	fs, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, fs.Write(context.Background(), []byte("first")))
	require.NoError(t, fs.Write(context.Background(), []byte("second")))

	data, err := fs.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)

	// No temp files left behind after the rename.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	fs, err := NewFileStore(path)
	require.NoError(t, err)

	// Clearing an empty store is not an error.
	require.NoError(t, fs.Clear(context.Background()))

	require.NoError(t, fs.Write(context.Background(), []byte("data")))
	require.NoError(t, fs.Clear(context.Background()))

	_, err = fs.Read(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}
