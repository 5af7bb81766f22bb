// Package history records confirmed selections in a local SQLite
// database so past picks can be reviewed with the history subcommand.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver
)

// NewDatabase opens (creating if needed) the history database at
// dbPath and applies the schema
func NewDatabase(dbPath string) (*sql.DB, error) {
	// Ensure directory exists if not in-memory
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA user_version = 1",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return db, nil
}

// ensureSchema creates the database schema if it doesn't exist
func ensureSchema(db *sql.DB) error {
	schema := `
-- One row per confirmed selection
CREATE TABLE IF NOT EXISTS selections (
    id         INTEGER PRIMARY KEY,
    timestamp  INTEGER NOT NULL,
    picker     TEXT    NOT NULL,
    item_count INTEGER NOT NULL CHECK (item_count > 0)
);

-- The selected identifiers, in catalog order
CREATE TABLE IF NOT EXISTS selection_items (
    id           INTEGER PRIMARY KEY,
    selection_id INTEGER NOT NULL REFERENCES selections(id) ON DELETE CASCADE,
    position     INTEGER NOT NULL CHECK (position >= 0),
    name         TEXT    NOT NULL,
    UNIQUE(selection_id, position),
    UNIQUE(selection_id, name)
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_selections_timestamp ON selections(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_items_selection ON selection_items(selection_id);
CREATE INDEX IF NOT EXISTS idx_items_name ON selection_items(name);
`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// GetDatabasePath returns the default cache path for the history database
func GetDatabasePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		// Fallback to current directory if the cache dir is not available
		cacheDir = "."
	}

	dbDir := filepath.Join(cacheDir, "logpick")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}

	return filepath.Join(dbDir, "history.db"), nil
}
