/*
Package catalog implements an optional SQLite database recording every source
image converted and every asset file written from it.

Sources are keyed by the SHA-1 of the file contents so converting the same
image twice reuses the existing row. Assets are keyed by their output path and
are replaced when a later run writes the same path again.
*/
package catalog

import (
	"crypto/sha1"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // register the sqlite3 driver
)

// Kind identifies the format of an asset file.
type Kind string

const (
	// Glyph is a 1bpp font glyph file
	Glyph Kind = "glyph"
	// Tile is a raw RGB0 tile file
	Tile Kind = "tile"
)

// Asset describes a single file written by a conversion.
type Asset struct {
	Path   string
	Kind   Kind
	SHA1   string
	Size   int64
	Source string
}

// Catalog is the asset database.
type Catalog struct {
	db *sql.DB
}

// Open opens or creates the catalog stored in file.
func Open(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	// Writes arrive from several workers; sqlite only permits one writer
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS source (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, width INTEGER NOT NULL, height INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS asset (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, kind TEXT NOT NULL, sha1 TEXT NOT NULL, size INTEGER NOT NULL, source_id INTEGER NOT NULL, FOREIGN KEY(source_id) REFERENCES source(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// AddSource returns the id of the source image with the given SHA-1,
// inserting it first if it is not already known.
func (c *Catalog) AddSource(sha string, width, height int) (int64, error) {
	var id int64
	switch err := c.db.QueryRow("SELECT id FROM source WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := c.db.Exec("INSERT INTO source (sha1, width, height) VALUES (?, ?, ?)", sha, width, height)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// AddAsset records that b was written to path from the given source.
func (c *Catalog) AddAsset(source int64, kind Kind, path string, b []byte) error {
	sha := fmt.Sprintf("%X", sha1.Sum(b))
	if _, err := c.db.Exec("INSERT OR REPLACE INTO asset (path, kind, sha1, size, source_id) VALUES (?, ?, ?, ?, ?)", path, string(kind), sha, len(b), source); err != nil {
		return err
	}
	return nil
}

// FindAsset returns the asset written to path, or nil if there is none.
func (c *Catalog) FindAsset(path string) (*Asset, error) {
	var a Asset
	var kind string
	switch err := c.db.QueryRow("SELECT a.path, a.kind, a.sha1, a.size, s.sha1 FROM asset AS a JOIN source AS s ON a.source_id = s.id WHERE a.path = ?", path).Scan(&a.Path, &kind, &a.SHA1, &a.Size, &a.Source); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		a.Kind = Kind(kind)
		return &a, nil
	default:
		return nil, err
	}
}

// Assets returns every recorded asset ordered by path.
func (c *Catalog) Assets() ([]Asset, error) {
	rows, err := c.db.Query("SELECT a.path, a.kind, a.sha1, a.size, s.sha1 FROM asset AS a JOIN source AS s ON a.source_id = s.id ORDER BY a.path")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		var a Asset
		var kind string
		if err := rows.Scan(&a.Path, &kind, &a.SHA1, &a.Size, &a.Source); err != nil {
			return nil, err
		}
		a.Kind = Kind(kind)
		assets = append(assets, a)
	}

	return assets, rows.Err()
}
