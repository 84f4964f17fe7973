package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// pragmas are applied to every opened store, in order.
var pragmas = []struct{ stmt, what string }{
	{"PRAGMA journal_mode = WAL", "enabling WAL"},
	{"PRAGMA busy_timeout = 5000", "setting busy timeout"},
	{"PRAGMA synchronous = NORMAL", "setting synchronous mode"},
}

// OpenDB opens the local key-value store at path and brings its schema up
// to date. Parent directories are created for file paths.
func OpenDB(path string) (*sql.DB, error) {
	memory := path == MemoryPath
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating store directory %s: %w", filepath.Dir(path), err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	if memory {
		// A second pooled connection would open a second, empty database.
		conn.SetMaxOpenConns(1)
	}

	for _, p := range pragmas {
		if _, err := conn.Exec(p.stmt); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}
	if err := Migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating store: %w", err)
	}
	return conn, nil
}
