/*
Package raster loads images and provides the pixel-level helpers used when
fitting an image to a workbook palette: unique-color counting and
proportional shrinking.
*/
package raster

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
)

var validExtensions = map[string]struct{}{
	".bmp":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
}

// ValidExtension reports whether path ends in a supported image extension.
func ValidExtension(path string) bool {
	_, ok := validExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Source loads images from the local filesystem.
type Source struct{}

// Load opens and decodes the image at path.
func (Source) Load(path string) (image.Image, error) {
	if !ValidExtension(path) {
		return nil, fmt.Errorf("raster: unsupported file extension %q, want one of .bmp .jpeg .jpg .png", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("raster: decoding %s: %w", path, err)
	}

	return m, nil
}

// UniqueColors returns the number of distinct RGB values in m. Alpha is
// ignored.
func UniqueColors(m image.Image) int {
	seen := make(map[uint32]struct{})
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			seen[uint32(c.R)<<16|uint32(c.G)<<8|uint32(c.B)] = struct{}{}
		}
	}
	return len(seen)
}

// Shrink scales m down to factor times its current size, rounding down. The
// caller must ensure both resulting dimensions stay at least 1.
func Shrink(m image.Image, factor float64) image.Image {
	b := m.Bounds()
	w := int(math.Floor(float64(b.Dx()) * factor))
	h := int(math.Floor(float64(b.Dy()) * factor))
	return resize.Resize(uint(w), uint(h), m, resize.NearestNeighbor)
}
