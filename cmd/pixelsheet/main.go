package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pixelgrid/pixelsheet"
	"github.com/urfave/cli/v2"
)

const defaultDB = "pixelsheet.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

func newConverter(c *cli.Context) (*pixelsheet.Converter, *pixelsheet.DB, error) {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	db, err := pixelsheet.OpenDB(c.String("db"))
	if err != nil {
		return nil, nil, err
	}

	conv := pixelsheet.New(db, logger, pixelsheet.Options{
		OutputDir: c.String("output"),
		Quantize:  c.Int("quantize"),
		Progress:  c.Bool("progress"),
	})

	return conv, db, nil
}

func cellWidthArg(c *cli.Context, i int) (int, error) {
	px, err := strconv.Atoi(c.Args().Get(i))
	if err != nil {
		return 0, fmt.Errorf("cell width must be an integer, got %q", c.Args().Get(i))
	}
	return px, pixelsheet.ValidateCellWidth(px)
}

func convertAction(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowSubcommandHelpAndExit(c, 1)
	}

	px, err := cellWidthArg(c, 1)
	if err != nil {
		return cli.Exit(err, 1)
	}

	conv, db, err := newConverter(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	out, err := conv.Convert(c.Args().First(), px)
	if err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Println(out)

	return nil
}

func batchAction(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowSubcommandHelpAndExit(c, 1)
	}

	px, err := cellWidthArg(c, 1)
	if err != nil {
		return cli.Exit(err, 1)
	}

	conv, db, err := newConverter(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	if err := conv.Batch(c.Args().First(), px); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func historyAction(c *cli.Context) error {
	db, err := pixelsheet.OpenDB(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	conversions, err := db.History()
	if err != nil {
		return cli.Exit(err, 1)
	}

	for _, conv := range conversions {
		fmt.Printf("%s  %s  %dx%d  %d colors  %s\n", conv.Created.Format("2006-01-02 15:04:05"), conv.Source, conv.Width, conv.Height, conv.Colors, conv.Output)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "pixelsheet"
	app.Usage = "render images as spreadsheet pixel art"
	app.Version = "1.0.0"
	app.ArgsUsage = "IMAGE CELL_WIDTH"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PIXELSHEET_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to the conversion history database",
		},
		&cli.StringFlag{
			Name:  "output",
			Value: pixelsheet.DefaultOutputDir,
			Usage: "directory to write workbooks into",
		},
		&cli.IntFlag{
			Name:  "quantize",
			Usage: "quantize to at most this many colors instead of shrinking",
		},
		&cli.BoolFlag{
			Name:  "progress",
			Usage: "show a progress bar while cells are written",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "increase verbosity",
		},
	}

	app.Action = convertAction

	app.Commands = []*cli.Command{
		{
			Name:      "convert",
			Usage:     "Convert one image into an xlsx workbook",
			ArgsUsage: "IMAGE CELL_WIDTH",
			Action:    convertAction,
		},
		{
			Name:      "batch",
			Usage:     "Convert every image found under a directory",
			ArgsUsage: "DIRECTORY CELL_WIDTH",
			Action:    batchAction,
		},
		{
			Name:   "history",
			Usage:  "List recorded conversions",
			Action: historyAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
