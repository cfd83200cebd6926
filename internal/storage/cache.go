// Package storage keeps a small SQLite cache of formatted-file fingerprints,
// letting repeat runs skip files whose content has not changed since the last
// successful format.
package storage

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// FormatCache records which file contents are known to be formatted.
type FormatCache struct {
	db *sql.DB
}

// NewFormatCache creates or opens the cache database at path.
func NewFormatCache(path string) (*FormatCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	c := &FormatCache{db: db}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init cache schema: %w", err)
	}
	return c, nil
}

func (c *FormatCache) initSchema() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS formatted_files (
			path       TEXT PRIMARY KEY,
			hash       TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	return err
}

// Hash fingerprints file content for cache lookups.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// IsFormatted reports whether path was last formatted with exactly this
// content hash.
func (c *FormatCache) IsFormatted(ctx context.Context, path, hash string) (bool, error) {
	var stored string
	err := c.db.QueryRowContext(ctx,
		`SELECT hash FROM formatted_files WHERE path = ?`, path).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == hash, nil
}

// MarkFormatted records that path's current content hash is formatted.
func (c *FormatCache) MarkFormatted(ctx context.Context, path, hash string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO formatted_files (path, hash, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET hash = excluded.hash, updated_at = excluded.updated_at
	`, path, hash, time.Now().Unix())
	return err
}

// Close releases the underlying database handle.
func (c *FormatCache) Close() error {
	return c.db.Close()
}
