package pixelsheet

import (
	"errors"
	"fmt"
	"image"

	pb "github.com/cheggaaa/pb/v3"
	"github.com/pixelgrid/pixelsheet/sheet"
)

// ErrGridTooLarge is returned when the image has more pixels in either
// dimension than the worksheet has rows or columns.
var ErrGridTooLarge = errors.New("image does not fit the worksheet grid")

// Emit writes one cell per pixel of m into sink, sized as squares of
// cellWidth screen pixels. Cell (col, row) gets the color of pixel
// (col, row) relative to the image origin.
func (c *Converter) Emit(sink SheetSink, m image.Image, cellWidth int) error {
	if err := ValidateCellWidth(cellWidth); err != nil {
		return err
	}

	b := m.Bounds()
	if b.Dx() > sheet.MaxColumns || b.Dy() > sheet.MaxRows {
		return fmt.Errorf("%w: %dx%d exceeds %d columns by %d rows", ErrGridTooLarge, b.Dx(), b.Dy(), sheet.MaxColumns, sheet.MaxRows)
	}

	var bar *pb.ProgressBar
	if c.opts.Progress {
		bar = pb.StartNew(b.Dx() * b.Dy())
		defer bar.Finish()
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := y - b.Min.Y
		if err := sink.SetRowHeight(row, cellWidth); err != nil {
			return err
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			if err := sink.SetCell(x-b.Min.X, row, m.At(x, y)); err != nil {
				return err
			}
			if bar != nil {
				bar.Increment()
			}
		}
	}

	return sink.SetColumnWidth(0, b.Dx()-1, cellWidth)
}
