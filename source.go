package assetconv

import (
	"crypto/sha1"
	"fmt"
	"image"
	_ "image/gif"  // register GIF sources
	_ "image/jpeg" // register JPEG sources
	_ "image/png"  // register PNG sources
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // register BMP sources
	_ "golang.org/x/image/tiff" // register TIFF sources
	_ "golang.org/x/image/webp" // register WebP sources
)

// decodeSource decodes the image in file into non-premultiplied RGBA samples
// anchored at (0, 0) and returns it along with the SHA-1 of the file.
func decodeSource(file string) (*image.NRGBA, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	h := sha1.New()
	r := io.TeeReader(f, h)

	m, err := imaging.Decode(r)
	if err != nil {
		return nil, "", err
	}

	// Hash any trailing bytes the decoder didn't need
	if _, err := io.Copy(ioutil.Discard, r); err != nil {
		return nil, "", err
	}

	return imaging.Clone(m), fmt.Sprintf("%X", h.Sum(nil)), nil
}

// baseName returns the final element of file with any extension removed.
// A leading dot is not treated as an extension.
func baseName(file string) string {
	base := filepath.Base(file)
	if name := strings.TrimSuffix(base, filepath.Ext(base)); strings.TrimLeft(name, ".") != "" {
		return name
	}
	return base
}
