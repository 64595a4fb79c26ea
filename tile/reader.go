package tile

import (
	"errors"
	"image"
	"io"
)

var (
	errNotEnough = errors.New("tile: not enough image data")
	errTooMuch   = errors.New("tile: too much image data")
	errBadSize   = errors.New("tile: invalid dimensions")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Decode reads a width by height tile from r and returns it as an opaque
// image. The fourth byte of each pixel is ignored.
func Decode(r io.Reader, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errBadSize
	}

	tmp := make([]byte, Size(width, height))
	if err := readFull(r, tmp); err != nil {
		if err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return nil, errNotEnough
	}

	if n, err := r.Read(make([]byte, 1)); n != 0 || (err != io.EOF && err != io.ErrUnexpectedEOF) {
		if err != nil {
			return nil, err
		}
		return nil, errTooMuch
	}

	m := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(tmp); i += BytesPerPixel {
		m.Pix[i+0] = tmp[i+0]
		m.Pix[i+1] = tmp[i+1]
		m.Pix[i+2] = tmp[i+2]
		m.Pix[i+3] = 0xff
	}

	return m, nil
}
