package bmp2tft

import (
	"database/sql"
	"fmt"

	"github.com/bodgit/bmp2tft/rgb565"
	_ "github.com/mattn/go-sqlite3"
)

// ImageDB caches packed originals keyed by the SHA1 of the source file.
type ImageDB struct {
	db *sql.DB
}

// Entry describes one cached image.
type Entry struct {
	ID     int64
	SHA1   string
	Name   string
	Width  int
	Height int
}

// NewImageDB opens, and creates if necessary, the sqlite database in file.
func NewImageDB(file string) (*ImageDB, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	// Batch workers share the handle; sqlite only has one writer anyway
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, name TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, pixels BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &ImageDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *ImageDB) Close() error {
	return db.db.Close()
}

// Add stores m under sha unless an image with that SHA1 already exists. It
// returns the row ID either way.
func (db *ImageDB) Add(sha, name string, m *rgb565.Image) (int64, error) {
	var id int64
	switch err := db.db.QueryRow("SELECT id FROM image WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		b, err := m.MarshalBinary()
		if err != nil {
			return 0, err
		}
		result, err := db.db.Exec("INSERT INTO image (sha1, name, width, height, pixels) VALUES (?, ?, ?, ?, ?)", sha, name, m.Rect.Dx(), m.Rect.Dy(), b)
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

// FindBySHA1 returns the cached image with the given SHA1, or nil if there
// isn't one.
func (db *ImageDB) FindBySHA1(sha string) (*rgb565.Image, error) {
	var b []byte
	switch err := db.db.QueryRow("SELECT pixels FROM image WHERE sha1 = ?", sha).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		m := new(rgb565.Image)
		if err := m.UnmarshalBinary(b); err != nil {
			return nil, fmt.Errorf("image %s: %w", sha, err)
		}
		return m, nil
	default:
		return nil, err
	}
}

// List returns every cached image ordered by name.
func (db *ImageDB) List() ([]Entry, error) {
	rows, err := db.db.Query("SELECT id, sha1, name, width, height FROM image ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SHA1, &e.Name, &e.Width, &e.Height); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Remove deletes the cached image with the given SHA1. It reports whether
// there was one.
func (db *ImageDB) Remove(sha string) (bool, error) {
	result, err := db.db.Exec("DELETE FROM image WHERE sha1 = ?", sha)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}
