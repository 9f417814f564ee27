// Package dbtest opens throwaway databases for package tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"lead-intake/internal/database"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open returns a migrated sqlite database living in t.TempDir().
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "leads.db")
	db, err := gorm.Open(sqlite.Open(path), database.Options(zap.NewNop(), "error"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
