package service

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kutbudev/tododeck/internal/repository"
)

// newTestDB opens a fresh in-memory sqlite database named after the
// test, so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := repository.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// newTestServices wires a TodoService and FileService against a test
// database and a throwaway uploads directory.
func newTestServices(t *testing.T) (*TodoService, *FileService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	files := NewFileService(db, t.TempDir(), "/uploads")
	todos := NewTodoService(db, files)
	return todos, files, db
}

// dataURL builds a valid data-URL envelope around content.
func dataURL(mimetype, content string) string {
	return "data:" + mimetype + ";base64," + base64.StdEncoding.EncodeToString([]byte(content))
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
