// Package dbtest opens throwaway SQLite databases with the full schema for
// package tests.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/retailos/internal/database"
	"github.com/georgemunganga/retailos/internal/modules/schema"
)

// Open returns a migrated database that is closed when the test ends.
func Open(t testing.TB) (*sql.DB, database.Dialect) {
	t.Helper()
	ctx := context.Background()

	db, dialect, err := database.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "retailos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, schema.NewManager(db, dialect).Ensure(ctx))
	return db, dialect
}
