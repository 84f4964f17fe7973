package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/vocnav/internal/db"
)

// NewTestDB opens a migrated in-memory store that is closed with the test.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	return openStore(t, db.MemoryPath)
}

// NewTestDBFile opens a migrated store file under the test's temp dir.
// Unlike :memory:, every pooled connection sees the same data, so WAL and
// concurrent writers behave as they do in production.
func NewTestDBFile(t testing.TB) *sql.DB {
	t.Helper()
	return openStore(t, filepath.Join(t.TempDir(), "vocnav.db"))
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

func openStore(t testing.TB, path string) *sql.DB {
	database, err := db.OpenDB(path)
	require.NoError(t, err, "opening test store")
	t.Cleanup(func() { _ = database.Close() })
	return database
}
