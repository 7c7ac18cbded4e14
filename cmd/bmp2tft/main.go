package main

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/bmp2tft"
	"github.com/bodgit/bmp2tft/carray"
	"github.com/bodgit/bmp2tft/resize"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

var resizeFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  "width",
		Usage: "resize to `WIDTH` pixels, preserving the aspect ratio unless --height is also given",
	},
	&cli.IntFlag{
		Name:  "height",
		Usage: "resize to `HEIGHT` pixels, preserving the aspect ratio unless --width is also given",
	},
	&cli.StringFlag{
		Name:  "filter",
		Value: resize.DefaultFilter,
		Usage: "resampling `FILTER` used when resizing",
	},
}

var formatFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "language",
		Aliases: []string{"l"},
		Value:   carray.C.String(),
		Usage:   "generate `LANGUAGE` source, either c or go",
	},
	&cli.StringFlag{
		Name:  "package",
		Value: carray.DefaultPackage,
		Usage: "use `PACKAGE` as the package clause of go source",
	},
	&cli.IntFlag{
		Name:  "columns",
		Usage: "wrap after `N` values per line, 0 for a single line",
	},
	&cli.BoolFlag{
		Name:  "no-const",
		Usage: "do not declare the array const",
	},
	&cli.BoolFlag{
		Name:  "signed",
		Usage: "use int16_t rather than uint16_t",
	},
	&cli.BoolFlag{
		Name:  "no-progmem",
		Usage: "do not add the PROGMEM qualifier",
	},
	&cli.BoolFlag{
		Name:  "dimensions",
		Usage: "add width and height constants",
	},
	&cli.BoolFlag{
		Name:  "checksum",
		Usage: "add a CRC-32 constant as computed by an STM32 CRC unit",
	},
	&cli.BoolFlag{
		Name:  "binary",
		Usage: "write raw RGB565 rather than source code",
	},
}

func flags(lists ...[]cli.Flag) []cli.Flag {
	var all []cli.Flag
	for _, l := range lists {
		all = append(all, l...)
	}
	return all
}

func resizeOptions(c *cli.Context) []resize.Option {
	var opts []resize.Option
	if c.IsSet("width") {
		opts = append(opts, resize.Width(c.Int("width")))
	}
	if c.IsSet("height") {
		opts = append(opts, resize.Height(c.Int("height")))
	}
	return append(opts, resize.WithFilter(c.String("filter")))
}

func options(c *cli.Context, name string) (*bmp2tft.Options, error) {
	if _, err := resize.Lookup(c.String("filter")); err != nil {
		return nil, err
	}

	language, err := carray.ParseLanguage(c.String("language"))
	if err != nil {
		return nil, err
	}

	return &bmp2tft.Options{
		Resize: resizeOptions(c),
		Format: &carray.Options{
			Name:       name,
			Language:   language,
			Package:    c.String("package"),
			Const:      !c.Bool("no-const"),
			Unsigned:   !c.Bool("signed"),
			PROGMEM:    !c.Bool("no-progmem"),
			Columns:    c.Int("columns"),
			Dimensions: c.Bool("dimensions"),
			Checksum:   c.Bool("checksum"),
		},
		Binary: c.Bool("binary"),
	}, nil
}

func newConverter(c *cli.Context) (*bmp2tft.Converter, func() error, error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	if c.String("db") == "" {
		return bmp2tft.New(nil, logger), func() error { return nil }, nil
	}

	db, err := bmp2tft.NewImageDB(c.String("db"))
	if err != nil {
		return nil, nil, err
	}

	return bmp2tft.New(db, logger), db.Close, nil
}

func writeOutput(file string, b []byte) error {
	if file == "" || file == "-" {
		_, err := os.Stdout.Write(b)
		return err
	}
	return ioutil.WriteFile(file, b, 0644)
}

func main() {
	app := cli.NewApp()

	app.Name = "bmp2tft"
	app.Usage = "Convert bitmaps to RGB565 arrays for TFT displays"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"BMP2TFT_DB"},
			Usage:   "cache decoded images in the sqlite database `FILE`",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert an image to a source code array",
			Description: "The array is named after FILE unless --name is given.",
			ArgsUsage:   "FILE",
			Flags: flags(resizeFlags, formatFlags, []cli.Flag{
				&cli.StringFlag{
					Name:    "name",
					Aliases: []string{"n"},
					Usage:   "name the array `NAME`",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "write to `FILE` instead of stdout",
				},
			}),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				o, err := options(c, c.String("name"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				m, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				b := new(bytes.Buffer)
				if err := m.Convert(c.Args().First(), b, o); err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := writeOutput(c.String("output"), b.Bytes()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "export",
			Usage:       "Export the RGB565 version of an image for previewing",
			Description: "The format is chosen by the extension of OUTPUT; bmp, gif, jpeg, png, tiff and r565 are supported.",
			ArgsUsage:   "FILE OUTPUT",
			Flags:       resizeFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				if _, err := resize.Lookup(c.String("filter")); err != nil {
					return cli.NewExitError(err, 1)
				}

				m, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				output := c.Args().Get(1)

				b := new(bytes.Buffer)
				if err := m.Export(c.Args().First(), b, filepath.Ext(output), resizeOptions(c)...); err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := writeOutput(output, b.Bytes()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "batch",
			Usage:       "Convert every bitmap in a directory tree",
			Description: "Each array is written next to its bitmap and named after it.",
			ArgsUsage:   "DIRECTORY",
			Flags: flags(resizeFlags, formatFlags, []cli.Flag{
				&cli.IntFlag{
					Name:    "jobs",
					Aliases: []string{"j"},
					Value:   1,
					Usage:   "convert up to `N` images at once",
				},
			}),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				o, err := options(c, "")
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				m, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				if err := m.Batch(c.Args().First(), c.Int("jobs"), o); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "import",
			Usage:       "Store images in the cache",
			Description: "Requires --db.",
			ArgsUsage:   "FILE...",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				if err := m.Import(c.Args().Slice()...); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "list",
			Usage:       "List cached images",
			Description: "Requires --db.",
			Action: func(c *cli.Context) error {
				if c.String("db") == "" {
					return cli.NewExitError("no image database", 1)
				}

				db, err := bmp2tft.NewImageDB(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				entries, err := db.List()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, e := range entries {
					fmt.Fprintf(c.App.Writer, "%s\t%dx%d\t%s\n", e.SHA1, e.Width, e.Height, e.Name)
				}

				return nil
			},
		},
		{
			Name:  "filters",
			Usage: "List the available resampling filters",
			Action: func(c *cli.Context) error {
				for _, f := range resize.Filters() {
					suffix := ""
					if f == resize.DefaultFilter {
						suffix = " (default)"
					}
					if _, err := io.WriteString(c.App.Writer, f+suffix+"\n"); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
