/*
Package sheet writes pixel grids into xlsx workbooks using excelize. It
enforces the format's hard limits: 1,048,576 rows, 16,384 columns and 65,490
unique cell styles per workbook.
*/
package sheet

import (
	"errors"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/xuri/excelize/v2"
)

const (
	// MaxRows and MaxColumns are the xlsx worksheet grid limits.
	MaxRows    = 1048576
	MaxColumns = 16384

	// MaxStyles is the number of unique cell styles one workbook accepts.
	MaxStyles = 65490

	sheetName = "Sheet1"
)

// Column widths are in character units of the default font while row heights
// are in points. At 96 DPI a pixel is 0.75 points and the default column
// character unit is 7 pixels wide.
const (
	pointsPerPixel     = 0.75
	pixelsPerCharWidth = 7.0
)

// ErrTooManyStyles is returned once the workbook style limit is reached.
var ErrTooManyStyles = errors.New("sheet: workbook cell style limit exceeded")

// Workbook is an xlsx workbook under construction. Styles are created once
// per distinct fill color and reused, so the number of styles equals the
// number of unique colors written.
type Workbook struct {
	f      *excelize.File
	styles map[string]int
}

// NewWorkbook returns an empty workbook with a single worksheet.
func NewWorkbook() *Workbook {
	return &Workbook{
		f:      excelize.NewFile(),
		styles: make(map[string]int),
	}
}

func hexColor(c color.Color) string {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		// Fully transparent pixels carry no chromaticity; render black.
		return "#000000"
	}
	return cc.Hex()
}

func (w *Workbook) style(hex string) (int, error) {
	if style, ok := w.styles[hex]; ok {
		return style, nil
	}
	if len(w.styles) >= MaxStyles {
		return 0, ErrTooManyStyles
	}
	style, err := w.f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{hex}, Pattern: 1},
	})
	if err != nil {
		return 0, err
	}
	w.styles[hex] = style
	return style, nil
}

// SetCell fills the cell at the zero-based (col, row) position with the RGB
// value of c.
func (w *Workbook) SetCell(col, row int, c color.Color) error {
	style, err := w.style(hexColor(c))
	if err != nil {
		return err
	}
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(sheetName, cell, cell, style)
}

// SetRowHeight sets the height of the zero-based row to px screen pixels.
func (w *Workbook) SetRowHeight(row, px int) error {
	return w.f.SetRowHeight(sheetName, row+1, float64(px)*pointsPerPixel)
}

// SetColumnWidth sets the width of the zero-based column range [first, last]
// to px screen pixels.
func (w *Workbook) SetColumnWidth(first, last, px int) error {
	start, err := excelize.ColumnNumberToName(first + 1)
	if err != nil {
		return err
	}
	end, err := excelize.ColumnNumberToName(last + 1)
	if err != nil {
		return err
	}
	return w.f.SetColWidth(sheetName, start, end, float64(px)/pixelsPerCharWidth)
}

// Save writes the workbook to path and releases its resources.
func (w *Workbook) Save(path string) error {
	defer w.f.Close()
	return w.f.SaveAs(path)
}

// Styles returns the number of unique fill styles created so far.
func (w *Workbook) Styles() int {
	return len(w.styles)
}
