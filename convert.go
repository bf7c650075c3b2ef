package pixelsheet

import (
	"os"
	"path/filepath"
	"strings"
)

// Convert reads the image at path, fits its palette to the workbook style
// limit and writes one workbook under the output directory, named after the
// image. It returns the path of the written file.
func (c *Converter) Convert(path string, cellWidth int) (string, error) {
	if err := ValidateCellWidth(cellWidth); err != nil {
		return "", err
	}

	m, err := c.Source.Load(path)
	if err != nil {
		return "", err
	}

	fitted, colors, err := c.Fit(m)
	if err != nil {
		return "", err
	}

	sink := c.NewSink()
	if err := c.Emit(sink, fitted, cellWidth); err != nil {
		return "", err
	}

	if err := os.MkdirAll(c.opts.OutputDir, 0755); err != nil {
		return "", err
	}

	out := c.outputPath(path)
	if err := sink.Save(out); err != nil {
		return "", err
	}
	c.logger.Printf("wrote %s\n", out)

	if c.db != nil {
		crc, err := crcFile(path)
		if err != nil {
			return "", err
		}
		b := fitted.Bounds()
		if _, err := c.db.Record(Conversion{
			Source: path,
			CRC:    crc,
			Width:  b.Dx(),
			Height: b.Dy(),
			Colors: colors,
			Output: out,
		}); err != nil {
			return "", err
		}
	}

	return out, nil
}

func (c *Converter) outputPath(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(c.opts.OutputDir, stem+".xlsx")
}
