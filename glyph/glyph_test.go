package glyph

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(w, h int, c color.NRGBA) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetNRGBA(x, y, c)
		}
	}
	return m
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "032.bin", Filename(32))
	assert.Equal(t, "100.bin", Filename(100))
	assert.Equal(t, "255.bin", Filename(255))
}

func TestHasTransparency(t *testing.T) {
	tables := []struct {
		name string
		m    image.Image
		want bool
	}{
		{"opaque", filled(8, 8, color.NRGBA{0x10, 0x20, 0x30, 0xff}), false},
		{"clear", filled(8, 8, color.NRGBA{0, 0, 0, 0}), false},
		{"constant", filled(8, 8, color.NRGBA{0xff, 0xff, 0xff, 0x80}), false},
		{"gray", image.NewGray(image.Rect(0, 0, 4, 4)), false},
		{"empty", image.NewNRGBA(image.Rectangle{}), false},
	}

	mixed := filled(16, 8, color.NRGBA{0, 0, 0, 0xff})
	mixed.SetNRGBA(15, 7, color.NRGBA{0, 0, 0, 0xfe})
	tables = append(tables, struct {
		name string
		m    image.Image
		want bool
	}{"mixed", mixed, true})

	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	rgba.SetRGBA(1, 1, color.RGBA{0x40, 0x40, 0x40, 0x40})
	tables = append(tables, struct {
		name string
		m    image.Image
		want bool
	}{"premultiplied", rgba, true})

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.Equal(t, table.want, HasTransparency(table.m))
		})
	}
}

func TestOn(t *testing.T) {
	assert.False(t, On(0, 0, 0, 128, true))
	assert.True(t, On(0, 0, 0, 129, true))
	assert.False(t, On(0xff, 0xff, 0xff, 0, false))

	// (127+128+129)/3 = 128 is not dark, (127+127+129)/3 = 127 is
	assert.False(t, On(127, 128, 129, 0xff, false))
	assert.True(t, On(127, 127, 129, 0xff, false))

	// Luminance is ignored when the image is transparent
	assert.True(t, On(0xff, 0xff, 0xff, 0xff, true))
}

func TestPackTransparentCell(t *testing.T) {
	m := filled(8, 8, color.NRGBA{0, 0, 0, 128})
	assert.Equal(t, [Size]byte{}, Pack(m, image.Point{}, true))
}

func TestPackDarkCell(t *testing.T) {
	m := filled(8, 8, color.NRGBA{0x7f, 0x7f, 0x7f, 0xff})
	assert.Equal(t, [Size]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, Pack(m, image.Point{}, false))
}

func TestPackBitOrder(t *testing.T) {
	m := filled(16, 16, color.NRGBA{0xff, 0xff, 0xff, 0xff})
	m.SetNRGBA(8, 8, color.NRGBA{0, 0, 0, 0xff})
	m.SetNRGBA(15, 10, color.NRGBA{0, 0, 0, 0xff})
	m.SetNRGBA(9, 15, color.NRGBA{0, 0, 0, 0xff})

	rows := Pack(m, image.Pt(8, 8), false)
	assert.Equal(t, [Size]byte{0x80, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x40}, rows)

	// The neighbouring cell is untouched
	assert.Equal(t, [Size]byte{}, Pack(m, image.Pt(0, 8), false))
}

func TestEncode(t *testing.T) {
	m := filled(8, 8, color.NRGBA{0xff, 0xff, 0xff, 0xff})
	m.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 0xff})
	m.SetNRGBA(7, 7, color.NRGBA{0, 0, 0, 0xff})

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m, false))

	assert.Equal(t, []byte{
		0x08, 0x00, 0x00, 0x00,
		0x08, 0x00, 0x00, 0x00,
		0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
	}, b.Bytes())
}

func TestEncodeSubImage(t *testing.T) {
	m := filled(24, 8, color.NRGBA{0, 0, 0, 0})
	for x := 8; x < 16; x++ {
		m.SetNRGBA(x, 3, color.NRGBA{0, 0, 0, 0xff})
	}

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m.SubImage(image.Rect(8, 0, 16, 8)), true))
	assert.Equal(t, []byte{0, 0, 0, 0xff, 0, 0, 0, 0}, b.Bytes()[headerSize:])
}

func TestEncodeWrongSize(t *testing.T) {
	err := Encode(new(bytes.Buffer), filled(8, 9, color.NRGBA{}), false)
	assert.Equal(t, errWrongSize, err)
}

func TestDecode(t *testing.T) {
	in := []byte{
		0x08, 0x00, 0x00, 0x00,
		0x08, 0x00, 0x00, 0x00,
		0x80, 0x41, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff,
	}

	m, err := Decode(bytes.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, Size, Size), m.Bounds())

	pm := m.(*image.Paletted)
	assert.Equal(t, uint8(1), pm.ColorIndexAt(0, 0))
	assert.Equal(t, uint8(0), pm.ColorIndexAt(1, 0))
	assert.Equal(t, uint8(1), pm.ColorIndexAt(1, 1))
	assert.Equal(t, uint8(1), pm.ColorIndexAt(7, 1))
	assert.Equal(t, uint8(0), pm.ColorIndexAt(6, 1))
	for x := 0; x < Size; x++ {
		assert.Equal(t, uint8(1), pm.ColorIndexAt(x, 7))
	}

	// Encoding the decoded glyph gives the same bytes back
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m, false))
	assert.Equal(t, in, b.Bytes())
}

func TestDecodeErrors(t *testing.T) {
	valid := append([]byte{8, 0, 0, 0, 8, 0, 0, 0}, make([]byte, Size)...)

	tables := []struct {
		name string
		in   []byte
		err  error
	}{
		{"empty", nil, errNotEnough},
		{"header only", valid[:headerSize], errNotEnough},
		{"short", valid[:FileSize-1], errNotEnough},
		{"long", append(append([]byte{}, valid...), 0), errTooMuch},
		{"wide", append([]byte{16, 0, 0, 0}, valid[4:]...), errBadHeader},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(table.in))
			assert.Equal(t, table.err, err)
		})
	}
}

func TestDecodeConfig(t *testing.T) {
	config, err := DecodeConfig(bytes.NewReader([]byte{8, 0, 0, 0, 8, 0, 0, 0}))
	require.NoError(t, err)
	assert.Equal(t, Size, config.Width)
	assert.Equal(t, Size, config.Height)
	assert.Equal(t, Palette, config.ColorModel)

	_, err = DecodeConfig(bytes.NewReader([]byte{8, 0, 0, 0, 7, 0, 0, 0}))
	assert.Equal(t, errBadHeader, err)
}
