package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"traductor/backend/internal/db"
)

// NewTestDB opens a migrated database in the test's temp dir.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "tracking.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}
