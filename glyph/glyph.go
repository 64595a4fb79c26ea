/*
Package glyph implements the 1-bit-per-pixel glyph format used for bitmap
font characters.

Each glyph is exactly 8 by 8 pixels. The file is written as a little-endian
uint32 width and a little-endian uint32 height (both always 8) followed by
eight bytes, one per pixel row from the top. Within a row byte the most
significant bit is the leftmost pixel. There is no compression so every file is
exactly 16 bytes in size.
*/
package glyph

import "fmt"

const (
	// Size is the width and height of a glyph in pixels
	Size       = 8
	headerSize = 8

	// FileSize is the size in bytes of an encoded glyph
	FileSize = headerSize + Size

	// Threshold is the alpha or luminance value a pixel is compared
	// against to decide whether it is set
	Threshold = 128
)

// Filename returns the file name used for the glyph with character code c.
func Filename(c int) string {
	return fmt.Sprintf("%03d.bin", c)
}
