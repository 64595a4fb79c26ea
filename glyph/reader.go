package glyph

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"io"
)

var (
	errNotEnough = errors.New("glyph: not enough data")
	errTooMuch   = errors.New("glyph: too much data")
	errBadHeader = errors.New("glyph: invalid dimensions in header")
)

// Palette is used for decoded glyphs; index 0 is an unset pixel and index 1 a
// set pixel.
var Palette = color.Palette{
	color.Gray{Y: 0xff},
	color.Gray{Y: 0x00},
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	image *image.Paletted

	tmp [FileSize]byte
}

func (d *decoder) readHeader() error {
	if err := readFull(d.r, d.tmp[:headerSize]); err != nil {
		return err
	}

	width := binary.LittleEndian.Uint32(d.tmp[0:])
	height := binary.LittleEndian.Uint32(d.tmp[4:])
	if width != Size || height != Size {
		return errBadHeader
	}
	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if configOnly {
		return nil
	}

	if err := readFull(d.r, d.tmp[headerSize:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if n, err := r.Read(d.tmp[:1]); n != 0 || (err != io.EOF && err != io.ErrUnexpectedEOF) {
		if err != nil {
			return err
		}
		return errTooMuch
	}

	d.image = image.NewPaletted(image.Rect(0, 0, Size, Size), Palette)

	for y, row := range d.tmp[headerSize:] {
		for x := 0; x < Size; x++ {
			d.image.SetColorIndex(x, y, row>>(Size-1-x)&1)
		}
	}

	return nil
}

// Decode reads a glyph from r and returns it as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a glyph without
// decoding the entire glyph.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: Palette,
		Width:      Size,
		Height:     Size,
	}, nil
}
