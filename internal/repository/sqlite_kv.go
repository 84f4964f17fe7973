package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/vocnav/internal/db"
)

// SQLiteKVRepo implements KVRepo over the kv_store table.
type SQLiteKVRepo struct {
	db  db.DBTX
	now func() time.Time
}

func NewSQLiteKVRepo(conn db.DBTX) *SQLiteKVRepo {
	return &SQLiteKVRepo{db: conn, now: time.Now}
}

func (r *SQLiteKVRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("key %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteKVRepo) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, value, r.now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (r *SQLiteKVRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}
	return nil
}

// List returns every entry ordered by key.
func (r *SQLiteKVRepo) List(ctx context.Context) ([]KVEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM kv_store ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	var out []KVEntry
	for rows.Next() {
		var e KVEntry
		var updated string
		if err := rows.Scan(&e.Key, &e.Value, &updated); err != nil {
			return nil, fmt.Errorf("scanning kv entry: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, updated); err == nil {
			e.UpdatedAt = t
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating kv entries: %w", err)
	}
	return out, nil
}

func (r *SQLiteKVRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store`); err != nil {
		return fmt.Errorf("clearing kv store: %w", err)
	}
	return nil
}
