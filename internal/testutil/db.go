package testutil

import (
	"testing"

	"renovation-crm/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SetupDB points database.DB at a fresh migrated in-memory sqlite database
// for the duration of the test.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	prev := database.DB
	database.DB = db

	t.Cleanup(func() {
		database.DB = prev
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
