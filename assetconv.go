/*
Package assetconv is a library for preparing bitmap images for a retro-style
renderer.

GlyphExtractor slices an 8 by 8 bitmap font sheet into one glyph file per
character and TileSlicer slices an arbitrary image into one raw tile file per
grid cell. The two converters are independent; each decodes a single source
image and writes many small files into a destination directory.
*/
package assetconv

import (
	"io/ioutil"
	"log"

	"github.com/bodgit/assetconv/catalog"
)

// Catalog records the files written by a conversion. *catalog.Catalog
// implements it.
type Catalog interface {
	AddSource(sha string, width, height int) (int64, error)
	AddAsset(source int64, kind catalog.Kind, path string, b []byte) error
}

// Options holds the settings shared by GlyphExtractor and TileSlicer.
type Options struct {
	// Logger receives progress messages; nil discards them
	Logger *log.Logger
	// Catalog, if not nil, has every written file recorded in it
	Catalog Catalog
	// Jobs is the number of cells encoded and written concurrently,
	// values less than one mean one
	Jobs int
}

func (o Options) pipeline() *pipeline {
	logger := o.Logger
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}

	jobs := o.Jobs
	if jobs < 1 {
		jobs = 1
	}

	return &pipeline{
		logger:  logger,
		catalog: o.Catalog,
		jobs:    jobs,
	}
}
