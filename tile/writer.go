package tile

import (
	"image"
	"image/color"
	"io"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(m image.Image) error {
	b := m.Bounds()

	row := make([]byte, b.Dx()*BytesPerPixel)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		if nm, ok := m.(*image.NRGBA); ok {
			i := nm.PixOffset(b.Min.X, y)
			for x := 0; x < b.Dx(); x++ {
				copy(row[x*BytesPerPixel:x*BytesPerPixel+3], nm.Pix[i+x*4:i+x*4+3])
				row[x*BytesPerPixel+3] = 0
			}
		} else {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(m.At(b.Min.X+x, y)).(color.NRGBA)
				row[x*BytesPerPixel+0] = c.R
				row[x*BytesPerPixel+1] = c.G
				row[x*BytesPerPixel+2] = c.B
				row[x*BytesPerPixel+3] = 0
			}
		}

		if _, err := e.w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes every pixel within the bounds of m to w in tile format. The
// alpha channel is discarded; the fourth byte of each pixel is always zero.
// Callers slicing a larger image should pass the SubImage for the tile.
func Encode(w io.Writer, m image.Image) error {
	e := encoder{w: w}

	return e.encode(m)
}
