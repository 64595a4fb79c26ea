package assetconv

import (
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/assetconv/catalog"
	"github.com/bodgit/assetconv/glyph"
)

const (
	// DefaultGlyphSource is the font sheet read when none is given
	DefaultGlyphSource = "01.png"
	// DefaultGlyphDir is the directory glyphs are written to when none is
	// given
	DefaultGlyphDir = "../assets/chars"
)

// GlyphConfig controls how cells of a font sheet map to character codes.
type GlyphConfig struct {
	// Offset is the character code of the top-left cell
	Offset int
	// MaxCode is the highest character code written; cells beyond it are
	// skipped
	MaxCode int
}

// DefaultGlyphConfig returns the configuration for a sheet starting at the
// ASCII space character and limited to a single byte.
func DefaultGlyphConfig() GlyphConfig {
	return GlyphConfig{
		Offset:  32,
		MaxCode: 255,
	}
}

// GlyphExtractor slices a bitmap font sheet into glyph files.
type GlyphExtractor struct {
	config GlyphConfig
	p      *pipeline
}

// NewGlyphExtractor returns a GlyphExtractor using config and options.
func NewGlyphExtractor(config GlyphConfig, options Options) *GlyphExtractor {
	return &GlyphExtractor{
		config: config,
		p:      options.pipeline(),
	}
}

// Extract decodes the font sheet in src and writes one glyph file to outDir
// for every complete 8 by 8 cell, named after its character code. The code of
// a cell is its row-major index plus the configured offset. Cells whose code
// exceeds the configured maximum are skipped but the remaining cells are still
// considered. outDir is created if it doesn't exist and existing files are
// overwritten.
func (g *GlyphExtractor) Extract(src, outDir string) error {
	m, sha, err := decodeSource(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	source, err := g.p.addSource(sha, m)
	if err != nil {
		return err
	}

	// Decided once for the whole sheet, not per glyph
	transparent := glyph.HasTransparency(m)

	cellsX := m.Bounds().Dx() / glyph.Size
	cellsY := m.Bounds().Dy() / glyph.Size

	g.p.logger.Printf("Extracting %dx%d glyphs from \"%s\" (transparent: %t)\n", cellsX, cellsY, src, transparent)

	return g.p.run(source, func(emit func(cell) error) error {
		for cy := 0; cy < cellsY; cy++ {
			for cx := 0; cx < cellsX; cx++ {
				code := cy*cellsX + cx + g.config.Offset
				if code > g.config.MaxCode {
					g.p.logger.Printf("Skipping glyph at %d,%d with character code %d\n", cx, cy, code)
					continue
				}

				pt := image.Pt(cx*glyph.Size, cy*glyph.Size)
				r := image.Rectangle{Min: pt, Max: pt.Add(image.Pt(glyph.Size, glyph.Size))}

				if err := emit(cell{
					file: filepath.Join(outDir, glyph.Filename(code)),
					kind: catalog.Glyph,
					encode: func(w io.Writer) error {
						return glyph.Encode(w, m.SubImage(r), transparent)
					},
				}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
