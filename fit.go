package pixelsheet

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pixelgrid/pixelsheet/raster"
)

// ErrPaletteTooLarge is returned when an image cannot be reduced below the
// workbook style limit even at the minimum size.
var ErrPaletteTooLarge = errors.New("palette cannot be reduced below the workbook style limit")

// Each pass removes 20% of the width and height, rounding down.
const shrinkFactor = 0.8

// Fit returns an image whose unique-color count does not exceed the
// configured limit, along with that count. Images already within the limit
// are returned unchanged; otherwise the image is shrunk repeatedly, or
// quantized at native resolution when the Quantize option is set.
func (c *Converter) Fit(m image.Image) (image.Image, int, error) {
	limit := c.opts.ColorLimit

	colors := raster.UniqueColors(m)
	if colors <= limit {
		return m, colors, nil
	}

	if c.opts.Quantize > 0 {
		return c.quantize(m, limit)
	}

	for colors > limit {
		b := m.Bounds()
		w := int(float64(b.Dx()) * shrinkFactor)
		h := int(float64(b.Dy()) * shrinkFactor)
		if w < 1 || h < 1 || (w == b.Dx() && h == b.Dy()) {
			return nil, 0, fmt.Errorf("%w: %d colors at %dx%d", ErrPaletteTooLarge, colors, b.Dx(), b.Dy())
		}

		m = raster.Shrink(m, shrinkFactor)
		colors = raster.UniqueColors(m)
	}

	b := m.Bounds()
	c.logger.Printf("image reduced to %dx%d with %d colors\n", b.Dx(), b.Dy(), colors)

	return m, colors, nil
}

// quantize reduces the palette in place of shrinking, keeping the original
// dimensions. The requested target is taken as-is; a target above the color
// limit that still leaves too many colors fails rather than being clamped.
func (c *Converter) quantize(m image.Image, limit int) (image.Image, int, error) {
	q := quantize.MedianCutQuantizer{}
	b := m.Bounds()

	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, c.opts.Quantize), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	colors := raster.UniqueColors(pm)
	if colors > limit {
		return nil, 0, fmt.Errorf("%w: %d colors after quantizing", ErrPaletteTooLarge, colors)
	}

	c.logger.Printf("image quantized to %d colors\n", colors)

	return pm, colors, nil
}
