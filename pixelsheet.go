/*
Package pixelsheet converts raster images into spreadsheet pixel art. Every
pixel of the (possibly downsampled) source image becomes one workbook cell
whose fill color is the pixel's RGB value.
*/
package pixelsheet

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log"

	"github.com/pixelgrid/pixelsheet/raster"
	"github.com/pixelgrid/pixelsheet/sheet"
)

// MaxColors is the maximum number of unique cell styles a single xlsx
// workbook can hold, which caps the palette of any emitted image.
const MaxColors = 65490

// DefaultOutputDir is where workbooks are written unless overridden.
const DefaultOutputDir = "output"

const (
	minCellWidth = 1
	maxCellWidth = 99
)

// ImageSource loads an image from a path.
type ImageSource interface {
	Load(path string) (image.Image, error)
}

// SheetSink receives the emitted grid. Columns and rows are zero-based and
// sizes are in screen pixels.
type SheetSink interface {
	SetCell(col, row int, c color.Color) error
	SetRowHeight(row, px int) error
	SetColumnWidth(first, last, px int) error
	Save(path string) error
}

// Options control fitting and emission.
type Options struct {
	// ColorLimit is the maximum palette size; zero means MaxColors.
	ColorLimit int
	// OutputDir is where workbooks are saved; empty means DefaultOutputDir.
	OutputDir string
	// Quantize, when positive, reduces the palette to at most this many
	// colors at native resolution instead of shrinking the image. The
	// conversion fails if the quantized palette still exceeds ColorLimit.
	Quantize int
	// Progress draws a progress bar on stderr while cells are written.
	Progress bool
}

// Converter turns image files into xlsx workbooks.
type Converter struct {
	// Source and NewSink may be replaced to swap out the image decoder or
	// the spreadsheet writer.
	Source  ImageSource
	NewSink func() SheetSink

	db     *DB
	logger *log.Logger
	opts   Options
}

// New returns a Converter. db may be nil, in which case no conversion
// history is recorded. A nil logger discards all output.
func New(db *DB, logger *log.Logger, opts Options) *Converter {
	if opts.ColorLimit <= 0 || opts.ColorLimit > MaxColors {
		opts.ColorLimit = MaxColors
	}
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Converter{
		Source:  raster.Source{},
		NewSink: func() SheetSink { return sheet.NewWorkbook() },
		db:      db,
		logger:  logger,
		opts:    opts,
	}
}

// ValidateCellWidth checks the requested cell size before any spreadsheet
// work begins.
func ValidateCellWidth(px int) error {
	if px < minCellWidth || px > maxCellWidth {
		return fmt.Errorf("cell width must be between %d and %d, got %d", minCellWidth, maxCellWidth, px)
	}
	return nil
}
