// Package repotest provides a throwaway SQLite-backed store for tests.
package repotest

import (
	"testing"

	"github.com/anonto42/folio/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database closed with the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// NewStore returns a migrated store over NewDB.
func NewStore(t testing.TB) *repositories.Store {
	t.Helper()

	store, err := repositories.NewGormStore(NewDB(t))
	require.NoError(t, err)
	return store
}
