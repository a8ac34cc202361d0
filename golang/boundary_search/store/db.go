package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
-- One row per finished boundary search
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    method TEXT NOT NULL,
    seed INTEGER NOT NULL,
    dims INTEGER NOT NULL,
    point_count INTEGER NOT NULL,
    config TEXT NOT NULL,
    box TEXT NOT NULL,
    stats TEXT NOT NULL
);

-- Boundary points of a run, coordinates packed as little-endian float64
CREATE TABLE IF NOT EXISTS points (
    run_id INTEGER NOT NULL,
    idx INTEGER NOT NULL,
    coords BLOB NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE,
    PRIMARY KEY (run_id, idx)
);

CREATE INDEX IF NOT EXISTS idx_runs_name ON runs(name);
`

//DB keeps the history of boundary searches in SQLite.
type DB struct {
	db *sql.DB
}

//Open opens or creates the run database at dbPath.
func Open(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: failed to open database: %w", err)
	}
	// pragmas are per connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: failed to create tables: %w", err)
	}

	return &DB{db: db}, nil
}

//Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}
