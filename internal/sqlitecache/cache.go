// Package sqlitecache records, across process runs, the content digest and
// canonical rendering VTC last saw for a given file path. It never backs
// the Store itself: the Store stays purely in-memory and append-only, as
// required. This is a change-detection aid only.
package sqlitecache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Cache wraps a SQLite-backed table of path -> (digest, rendered, seen_at).
type Cache struct {
	db *sql.DB
}

// Open creates (if needed) the schema at path and returns a Cache over it.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitecache: open %s: %w", path, err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS file_cache (
			path     TEXT PRIMARY KEY,
			digest   TEXT NOT NULL,
			rendered TEXT NOT NULL,
			seen_at  INTEGER NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitecache: create schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Entry is a single cached record.
type Entry struct {
	Digest   string
	Rendered string
	SeenAt   int64
}

// Lookup returns the cached entry for path, if one exists.
func (c *Cache) Lookup(path string) (Entry, bool, error) {
	row := c.db.QueryRow(`SELECT digest, rendered, seen_at FROM file_cache WHERE path = ?`, path)
	var e Entry
	if err := row.Scan(&e.Digest, &e.Rendered, &e.SeenAt); err != nil {
		if err == sql.ErrNoRows {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("sqlitecache: lookup %s: %w", path, err)
	}
	return e, true, nil
}

// Put upserts the cached entry for path.
func (c *Cache) Put(path string, e Entry) error {
	_, err := c.db.Exec(`
		INSERT INTO file_cache (path, digest, rendered, seen_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET digest = excluded.digest, rendered = excluded.rendered, seen_at = excluded.seen_at
	`, path, e.Digest, e.Rendered, e.SeenAt)
	if err != nil {
		return fmt.Errorf("sqlitecache: put %s: %w", path, err)
	}
	return nil
}

// Close releases the underlying database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}
