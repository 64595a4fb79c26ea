package assetconv

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bodgit/assetconv/glyph"
	"github.com/bodgit/assetconv/tile"
	"github.com/ericpauley/go-quantize/quantize"
)

var (
	errNoTiles       = errors.New("no tiles found")
	errNoGlyphs      = errors.New("no glyphs found")
	errBadColumns    = errors.New("columns must be positive")
	errUnknownFormat = errors.New("unknown preview format")
)

func decodeTileFile(file string, width, height int) (*image.RGBA, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return tile.Decode(f, width, height)
}

func decodeGlyphFile(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return glyph.Decode(f)
}

// ReassembleTiles reads every tile file in dir and places it back at its grid
// position, producing the source image minus any ignored border. Files not
// named like tiles are ignored.
func ReassembleTiles(dir string, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errBadTileSize
	}

	files, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	tiles := make(map[image.Point]*image.RGBA)
	var tilesX, tilesY int
	for _, file := range files {
		if !file.Mode().IsRegular() {
			continue
		}

		ty, tx, err := tile.ParseFilename(file.Name())
		if err != nil {
			continue
		}

		m, err := decodeTileFile(filepath.Join(dir, file.Name()), width, height)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Name(), err)
		}
		tiles[image.Pt(tx, ty)] = m

		if tx >= tilesX {
			tilesX = tx + 1
		}
		if ty >= tilesY {
			tilesY = ty + 1
		}
	}

	if len(tiles) == 0 {
		return nil, errNoTiles
	}

	sheet := image.NewRGBA(image.Rect(0, 0, tilesX*width, tilesY*height))
	for p, m := range tiles {
		dp := image.Pt(p.X*width, p.Y*height)
		draw.Draw(sheet, m.Bounds().Add(dp), m, image.Point{}, draw.Src)
	}

	return sheet, nil
}

// GlyphSheet reads every glyph file in dir and lays them out columns glyphs
// wide, with the glyph for character code offset in the top-left corner.
// Glyphs with a code below offset and files not named like glyphs are
// ignored.
func GlyphSheet(dir string, columns, offset int) (*image.Paletted, error) {
	if columns <= 0 {
		return nil, errBadColumns
	}

	files, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	glyphs := make(map[int]image.Image)
	last := -1
	for _, file := range files {
		if !file.Mode().IsRegular() {
			continue
		}

		code, err := strconv.Atoi(strings.TrimSuffix(file.Name(), ".bin"))
		if err != nil || glyph.Filename(code) != file.Name() || code < offset {
			continue
		}

		m, err := decodeGlyphFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Name(), err)
		}

		i := code - offset
		glyphs[i] = m
		if i > last {
			last = i
		}
	}

	if len(glyphs) == 0 {
		return nil, errNoGlyphs
	}

	rows := last/columns + 1
	sheet := image.NewPaletted(image.Rect(0, 0, columns*glyph.Size, rows*glyph.Size), glyph.Palette)
	for i, m := range glyphs {
		dp := image.Pt(i%columns*glyph.Size, i/columns*glyph.Size)
		draw.Draw(sheet, m.Bounds().Add(dp), m, image.Point{}, draw.Src)
	}

	return sheet, nil
}

// EncodePreview writes m to w as either ".png" or ".gif", chosen by ext.
// Images with more colors than GIF allows are reduced with a median cut
// quantizer.
func EncodePreview(w io.Writer, m image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, m)
	case ".gif":
		if pm, ok := m.(*image.Paletted); ok && len(pm.Palette) <= 256 {
			return gif.Encode(w, pm, nil)
		}
		return gif.Encode(w, m, &gif.Options{
			NumColors: 256,
			Quantizer: &quantize.MedianCutQuantizer{},
			Drawer:    draw.FloydSteinberg,
		})
	default:
		return errUnknownFormat
	}
}
