package glyph

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"io"
)

var errWrongSize = errors.New("glyph: image is wrong size")

// HasTransparency reports whether m carries meaningful transparency, that is
// whether its alpha channel is not constant across the whole image. It should
// be computed once per source image and passed to Encode for every glyph.
func HasTransparency(m image.Image) bool {
	b := m.Bounds()
	if b.Empty() {
		return false
	}

	if nm, ok := m.(*image.NRGBA); ok {
		return hasTransparencyNRGBA(nm)
	}

	min, max := uint8(0xff), uint8(0)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := alphaAt(m, x, y)
			if a < min {
				min = a
			}
			if a > max {
				max = a
			}
		}
	}
	return min < max
}

func hasTransparencyNRGBA(m *image.NRGBA) bool {
	b := m.Bounds()
	min, max := uint8(0xff), uint8(0)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := m.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x, i = x+1, i+4 {
			a := m.Pix[i+3]
			if a < min {
				min = a
			}
			if a > max {
				max = a
			}
		}
	}
	return min < max
}

func alphaAt(m image.Image, x, y int) uint8 {
	_, _, _, a := m.At(x, y).RGBA()
	return uint8(a >> 8)
}

// nrgbaAt returns the non-premultiplied 8-bit samples at (x, y)
func nrgbaAt(m image.Image, x, y int) (r, g, b, a uint8) {
	if nm, ok := m.(*image.NRGBA); ok {
		c := nm.NRGBAAt(x, y)
		return c.R, c.G, c.B, c.A
	}
	c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
	return c.R, c.G, c.B, c.A
}

// On reports whether a pixel with the given non-premultiplied samples is set.
func On(r, g, b, a uint8, transparent bool) bool {
	if transparent {
		return a > Threshold
	}
	return (int(r)+int(g)+int(b))/3 < Threshold
}

// Pack computes the eight row bitmasks for the 8 by 8 block of m whose
// top-left corner is at p.
func Pack(m image.Image, p image.Point, transparent bool) [Size]byte {
	var rows [Size]byte
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			r, g, b, a := nrgbaAt(m, p.X+x, p.Y+y)
			if On(r, g, b, a, transparent) {
				rows[y] |= 1 << (Size - 1 - x)
			}
		}
	}
	return rows
}

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(rows [Size]byte) error {
	var tmp [FileSize]byte
	binary.LittleEndian.PutUint32(tmp[0:], Size)
	binary.LittleEndian.PutUint32(tmp[4:], Size)
	copy(tmp[headerSize:], rows[:])

	_, err := e.w.Write(tmp[:])
	return err
}

// Encode writes the 8 by 8 Image m to w in glyph format. The transparent
// flag selects between alpha and luminance thresholding and should be the
// result of HasTransparency on the whole source image rather than just m.
func Encode(w io.Writer, m image.Image, transparent bool) error {
	b := m.Bounds()
	if b.Dx() != Size || b.Dy() != Size {
		return errWrongSize
	}

	e := encoder{w: w}

	return e.encode(Pack(m, b.Min, transparent))
}
