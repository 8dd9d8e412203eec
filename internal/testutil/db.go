// Package testutil provides throwaway databases for integration tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"mishura/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// NewSQLite opens a migrated sqlite database in a temporary directory. The
// database is closed when the test ends. Tests using it are skipped with -short.
func NewSQLite(t testing.TB) *sqlx.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		filepath.Join(t.TempDir(), "mishura.db"))

	database, err := db.Connect(db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database, ""))
	return database
}
