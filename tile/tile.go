/*
Package tile implements the raw tile format used for image tiles.

A tile is an arbitrary width by height block of pixels written with no header
and no compression. Pixels are stored row-major from the top-left corner and
each pixel takes four bytes: red, green and blue followed by a zero byte. The
source alpha channel is never stored so a tile file is always exactly
width * height * 4 bytes and the dimensions must be known to read it back.
*/
package tile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// BytesPerPixel is the number of bytes each pixel occupies
	BytesPerPixel = 4

	// DefaultRoot is the destination directory used when none is given
	DefaultRoot = "../assets/tiles/"
)

var errBadFilename = errors.New("tile: invalid filename")

// Filename returns the file name used for the tile in row ty and column tx.
func Filename(ty, tx int) string {
	return fmt.Sprintf("tile_%d_%d.bin", ty, tx)
}

// ParseFilename recovers the row and column from a name produced by Filename.
func ParseFilename(name string) (ty, tx int, err error) {
	if !strings.HasPrefix(name, "tile_") || !strings.HasSuffix(name, ".bin") {
		return 0, 0, errBadFilename
	}
	parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(name, "tile_"), ".bin"), "_")
	if len(parts) != 2 {
		return 0, 0, errBadFilename
	}
	if ty, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, errBadFilename
	}
	if tx, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, errBadFilename
	}
	// Reject anything Filename would not have produced, such as "+1" or "01"
	if ty < 0 || tx < 0 || Filename(ty, tx) != name {
		return 0, 0, errBadFilename
	}
	return ty, tx, nil
}

// Size returns the number of bytes in an encoded tile of the given dimensions.
func Size(width, height int) int {
	return width * height * BytesPerPixel
}
