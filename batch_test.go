package pixelsheet

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, dir string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".hidden"), 0755))

	for _, name := range []string{"one.png", filepath.Join("nested", "two.png")} {
		f, err := os.Create(filepath.Join(dir, name))
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, fourColors()))
		require.NoError(t, f.Close())
	}

	// Neither of these should be picked up.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden", "three.png"), []byte("skip"), 0644))
}

func TestBatchConvertsTree(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir)

	outDir := filepath.Join(dir, "out")
	c := New(nil, nil, Options{OutputDir: outDir})

	require.NoError(t, c.Batch(dir, 2))

	for _, name := range []string{"one.xlsx", "two.xlsx"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}
	_, err := os.Stat(filepath.Join(outDir, "three.xlsx"))
	assert.True(t, os.IsNotExist(err))
}

func TestBatchSkipsConverted(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "one.png")
	f, err := os.Create(src)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, fourColors()))
	require.NoError(t, f.Close())

	db, err := OpenDB(filepath.Join(dir, "history.db"))
	require.NoError(t, err)
	defer db.Close()

	c := New(db, nil, Options{OutputDir: filepath.Join(dir, "out")})

	require.NoError(t, c.Batch(dir, 2))
	require.NoError(t, c.Batch(dir, 2))

	history, err := db.History()
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestBatchRejectsBadCellWidth(t *testing.T) {
	c := New(nil, nil, Options{})
	assert.Error(t, c.Batch(t.TempDir(), 0))
}

func TestBatchPropagatesDecodeError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0644))

	c := New(nil, nil, Options{OutputDir: filepath.Join(dir, "out")})
	assert.Error(t, c.Batch(dir, 2))
}

func TestBatchEmptyDirectory(t *testing.T) {
	c := New(nil, nil, Options{OutputDir: filepath.Join(t.TempDir(), "out")})
	assert.NoError(t, c.Batch(t.TempDir(), 2))
}
