package raster

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidExtension(t *testing.T) {
	valid := []string{"a.bmp", "a.jpeg", "a.jpg", "a.png", "A.PNG", "dir/b.Jpg"}
	for _, path := range valid {
		assert.True(t, ValidExtension(path), path)
	}

	invalid := []string{"a.gif", "a.txt", "a.png.txt", "a", ""}
	for _, path := range invalid {
		assert.False(t, ValidExtension(path), path)
	}
}

func TestSourceLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	require.NoError(t, err)

	m := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	require.NoError(t, png.Encode(f, m))
	require.NoError(t, f.Close())

	got, err := Source{}.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Bounds().Dx())
	assert.Equal(t, 2, got.Bounds().Dy())
}

func TestSourceLoadMissing(t *testing.T) {
	_, err := Source{}.Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestSourceLoadBadExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gif")
	require.NoError(t, os.WriteFile(path, []byte{}, 0644))

	_, err := Source{}.Load(path)
	assert.ErrorContains(t, err, "unsupported file extension")
}

func TestSourceLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0644))

	_, err := Source{}.Load(path)
	assert.ErrorContains(t, err, "decoding")
}

func TestUniqueColors(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	m.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	m.Set(1, 0, color.NRGBA{0, 255, 0, 255})
	m.Set(0, 1, color.NRGBA{0, 0, 255, 255})
	m.Set(1, 1, color.NRGBA{255, 0, 0, 255})

	assert.Equal(t, 3, UniqueColors(m))
}

func TestUniqueColorsIgnoresAlpha(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	m.Set(0, 0, color.NRGBA{10, 20, 30, 255})
	m.Set(1, 0, color.NRGBA{10, 20, 30, 128})

	assert.Equal(t, 1, UniqueColors(m))
}

func TestShrink(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 10, 5))

	got := Shrink(m, 0.8)
	assert.Equal(t, 8, got.Bounds().Dx())
	assert.Equal(t, 4, got.Bounds().Dy())
}
