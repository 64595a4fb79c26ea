package main

import (
	"errors"
	"fmt"
	"image"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/assetconv"
	"github.com/bodgit/assetconv/catalog"
	"github.com/bodgit/assetconv/tile"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// options builds the library options from the global flags. The returned
// function closes the catalog, if any.
func options(c *cli.Context) (assetconv.Options, func(), error) {
	o := assetconv.Options{
		Logger: newLogger(c),
		Jobs:   c.Int("jobs"),
	}

	if c.String("db") == "" {
		return o, func() {}, nil
	}

	db, err := catalog.Open(c.String("db"))
	if err != nil {
		return o, nil, err
	}
	o.Catalog = db

	return o, func() { db.Close() }, nil
}

func main() {
	// A missing .env is fine, everything has a default
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatal(err)
	}

	app := cli.NewApp()

	app.Name = "assetconv"
	app.Usage = "Bitmap font and tile converter for retro renderers"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"ASSETCONV_DB"},
			Usage:   "record written files in this catalog database",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			EnvVars: []string{"ASSETCONV_JOBS"},
			Value:   1,
			Usage:   "number of cells to write concurrently",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:  "tile",
			Usage: "Slice an image into raw RGB0 tiles",
			Description: "Writes one tile_<row>_<col>.bin file per complete tile into a directory\n" +
				"named after the source image inside DST_PATH. A DST_PATH made only of\n" +
				"digits is read as a tile size.",
			ArgsUsage: "FROM_PATH [DST_PATH] SIZE | WIDTH HEIGHT",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "root",
					EnvVars: []string{"ASSETCONV_TILE_ROOT"},
					Value:   tile.DefaultRoot,
					Usage:   "destination used when DST_PATH is omitted",
				},
			},
			Action: func(c *cli.Context) error {
				if wantsHelp(c.Args().Slice()) {
					return cli.ShowCommandHelp(c, c.Command.Name)
				}

				args, err := assetconv.ParseTileArgs(c.Args().Slice(), c.String("root"))
				if err != nil {
					if errors.Is(err, assetconv.ErrUsage) {
						fmt.Fprintln(c.App.ErrWriter, err)
						cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
					}
					return cli.Exit(err, 1)
				}

				o, done, err := options(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer done()

				s, err := assetconv.NewTileSlicer(args.Width, args.Height, o)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := s.Slice(args.Source, args.Destination); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "glyph",
			Usage: "Extract 8x8 glyphs from a bitmap font sheet",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "src",
					EnvVars: []string{"ASSETCONV_GLYPH_SRC"},
					Value:   assetconv.DefaultGlyphSource,
					Usage:   "font sheet to read",
				},
				&cli.StringFlag{
					Name:    "out",
					EnvVars: []string{"ASSETCONV_GLYPH_OUT"},
					Value:   assetconv.DefaultGlyphDir,
					Usage:   "directory to write glyphs to",
				},
				&cli.IntFlag{
					Name:  "offset",
					Value: assetconv.DefaultGlyphConfig().Offset,
					Usage: "character code of the top-left glyph",
				},
				&cli.IntFlag{
					Name:  "max-code",
					Value: assetconv.DefaultGlyphConfig().MaxCode,
					Usage: "highest character code to write",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() > 0 {
					cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
				}

				o, done, err := options(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer done()

				g := assetconv.NewGlyphExtractor(assetconv.GlyphConfig{
					Offset:  c.Int("offset"),
					MaxCode: c.Int("max-code"),
				}, o)

				if err := g.Extract(c.String("src"), c.String("out")); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "preview",
			Usage:       "Rebuild a viewable image from converted files",
			Description: "The output format, PNG or GIF, is chosen by the extension of OUTPUT.",
			ArgsUsage:   "DIRECTORY OUTPUT",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kind",
					Value: string(catalog.Tile),
					Usage: "kind of files in DIRECTORY, \"tile\" or \"glyph\"",
				},
				&cli.IntFlag{
					Name:  "width",
					Value: 8,
					Usage: "tile width",
				},
				&cli.IntFlag{
					Name:  "height",
					Value: 8,
					Usage: "tile height",
				},
				&cli.IntFlag{
					Name:  "columns",
					Value: 16,
					Usage: "glyphs per row",
				},
				&cli.IntFlag{
					Name:  "offset",
					Value: assetconv.DefaultGlyphConfig().Offset,
					Usage: "character code of the top-left glyph",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() != 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
				}

				var (
					m   image.Image
					err error
				)
				switch catalog.Kind(c.String("kind")) {
				case catalog.Tile:
					m, err = assetconv.ReassembleTiles(c.Args().Get(0), c.Int("width"), c.Int("height"))
				case catalog.Glyph:
					m, err = assetconv.GlyphSheet(c.Args().Get(0), c.Int("columns"), c.Int("offset"))
				default:
					return cli.Exit(fmt.Sprintf("unknown kind %q", c.String("kind")), 1)
				}
				if err != nil {
					return cli.Exit(err, 1)
				}

				return writePreview(c.Args().Get(1), m)
			},
		},
		{
			Name:  "list",
			Usage: "List the files recorded in the catalog",
			Action: func(c *cli.Context) error {
				if c.String("db") == "" {
					return cli.Exit("no catalog given, use --db", 1)
				}

				db, err := catalog.Open(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				assets, err := db.Assets()
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, a := range assets {
					fmt.Fprintf(c.App.Writer, "%-5s %s %6d %s\n", a.Kind, a.SHA1, a.Size, a.Path)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func writePreview(file string, m image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer f.Close()

	if err := assetconv.EncodePreview(f, m, filepath.Ext(file)); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}
