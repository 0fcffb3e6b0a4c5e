package testutil

import (
	"database/sql"
	"testing"

	"github.com/mathieuvidal/examplan/internal/db"
)

// NewTestDB opens a fresh in-memory SQLite database with the full schema
// migrated, registering cleanup on the test. Each call gets an isolated
// database, so tests never share plan or progress state.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open in-memory database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestUoW wraps a test database in the production UnitOfWork so
// transactional paths run the real commit and rollback code under test.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
