package assetconv

import (
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/assetconv/catalog"
	"github.com/bodgit/assetconv/tile"
)

var errBadTileSize = errors.New("tile width and height must be positive")

// TileSlicer slices images into fixed size tile files.
type TileSlicer struct {
	width, height int
	p             *pipeline
}

// NewTileSlicer returns a TileSlicer producing width by height tiles.
func NewTileSlicer(width, height int, options Options) (*TileSlicer, error) {
	if width <= 0 || height <= 0 {
		return nil, errBadTileSize
	}
	return &TileSlicer{
		width:  width,
		height: height,
		p:      options.pipeline(),
	}, nil
}

// Slice decodes the image in src and writes every complete tile to a
// directory named after src, without its extension, inside dstDir. Tiles are
// named by row and column; pixels to the right of or below the last complete
// tile are ignored.
func (s *TileSlicer) Slice(src, dstDir string) error {
	m, sha, err := decodeSource(src)
	if err != nil {
		return err
	}

	dir := filepath.Join(dstDir, baseName(src))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	source, err := s.p.addSource(sha, m)
	if err != nil {
		return err
	}

	tilesX := m.Bounds().Dx() / s.width
	tilesY := m.Bounds().Dy() / s.height

	s.p.logger.Printf("Slicing \"%s\" into %dx%d tiles of %dx%d pixels\n", src, tilesX, tilesY, s.width, s.height)

	return s.p.run(source, func(emit func(cell) error) error {
		for ty := 0; ty < tilesY; ty++ {
			for tx := 0; tx < tilesX; tx++ {
				r := image.Rect(tx*s.width, ty*s.height, (tx+1)*s.width, (ty+1)*s.height)

				if err := emit(cell{
					file: filepath.Join(dir, tile.Filename(ty, tx)),
					kind: catalog.Tile,
					encode: func(w io.Writer) error {
						return tile.Encode(w, m.SubImage(r))
					},
				}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
