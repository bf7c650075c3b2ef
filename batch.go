package pixelsheet

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/pixelgrid/pixelsheet/raster"
)

const batchWorkers = 4

func (c *Converter) findImages(ctx context.Context, base string) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			if !raster.ValidExtension(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc
}

func (c *Converter) imageWorker(ctx context.Context, in <-chan string, cellWidth int) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			converted, err := c.alreadyConverted(file)
			if err != nil {
				errc <- err
				return
			}
			if converted {
				c.logger.Printf("skipping %s, already converted\n", file)
				continue
			}

			if _, err := c.Convert(file, cellWidth); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc
}

// alreadyConverted reports whether an identical copy of file has been
// converted before and its workbook is still present.
func (c *Converter) alreadyConverted(file string) (bool, error) {
	if c.db == nil {
		return false, nil
	}

	crc, err := crcFile(file)
	if err != nil {
		return false, err
	}

	prev, err := c.db.FindBySource(crc)
	if err != nil || prev == nil {
		return false, err
	}

	if _, err := os.Stat(prev.Output); err != nil {
		return false, nil
	}

	return true, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Batch converts every image found under path, skipping files whose previous
// conversion is still on disk.
func (c *Converter) Batch(path string, cellWidth int) error {
	if err := ValidateCellWidth(cellWidth); err != nil {
		return err
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc := c.findImages(ctx, dir)
	errcList = append(errcList, errc)

	for i := 0; i < batchWorkers; i++ {
		errcList = append(errcList, c.imageWorker(ctx, files, cellWidth))
	}

	return waitForPipeline(errcList...)
}
