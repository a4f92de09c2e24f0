package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileMeansNoCursor(t *testing.T) {
	store, err := NewCursorStore(filepath.Join(t.TempDir(), "cursor.txt"))
	require.NoError(t, err)

	watermark, err := store.Load()

	require.NoError(t, err)
	assert.Empty(t, watermark)
}

func TestSaveThenLoad(t *testing.T) {
	store, err := NewCursorStore(filepath.Join(t.TempDir(), "cursor.txt"))
	require.NoError(t, err)

	require.NoError(t, store.Save("123456"))

	watermark, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "123456", watermark)
}

func TestSave_Overwrites(t *testing.T) {
	store, err := NewCursorStore(filepath.Join(t.TempDir(), "cursor.txt"))
	require.NoError(t, err)

	require.NoError(t, store.Save("100"))
	require.NoError(t, store.Save("200"))

	watermark, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "200", watermark)
}

func TestLoad_TrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursor.txt")
	store, err := NewCursorStore(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("  42\n"), 0600))

	watermark, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, "42", watermark)
}

func TestNewCursorStore_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cursor.txt")

	store, err := NewCursorStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save("1"))

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
