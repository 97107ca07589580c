package main

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	_ "github.com/ncruces/go-sqlite3/driver"
)

// Catalog is a tiny SQLite-backed record of every corpus this command has
// built an index for (name, path, doc count, build time). Resolve maps a
// name back to its directory; gokittq does not read the catalog and takes
// an index directory only.
// Schema-on-init and a single guarding mutex, following the teacher's
// internal/store.SQLiteStore shape generalized from its notes/entities/
// edges tables down to the one table this command needs.
type Catalog struct {
	mu sync.Mutex
	db *sql.DB
}

const catalogSchema = `
CREATE TABLE IF NOT EXISTS indexes (
	name TEXT PRIMARY KEY,
	path TEXT NOT NULL,
	doc_count INTEGER NOT NULL,
	built_at INTEGER NOT NULL
);
`

// OpenCatalog opens (creating if necessary) the catalog database at dsn,
// which may be a file path or ":memory:".
func OpenCatalog(dsn string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", dsn, err)
	}
	if _, err := db.Exec(catalogSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: create schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the underlying database handle.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.Close()
}

// Record upserts one index's catalog row.
func (c *Catalog) Record(name, path string, docCount int, builtAt int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(`
		INSERT INTO indexes (name, path, doc_count, built_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			path = excluded.path,
			doc_count = excluded.doc_count,
			built_at = excluded.built_at
	`, name, path, docCount, builtAt)
	return err
}

// Resolve returns the on-disk path a catalogued index name was built at.
func (c *Catalog) Resolve(name string) (path string, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	row := c.db.QueryRow(`SELECT path FROM indexes WHERE name = ?`, name)
	if err := row.Scan(&path); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return path, true, nil
}

// List returns every catalogued index name.
func (c *Catalog) List() ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.db.Query(`SELECT name FROM indexes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
