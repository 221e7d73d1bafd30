package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenMigratesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database file not created: %v", err)
	}

	for _, table := range []string{
		"users", "faculties", "courses", "classes",
		"students", "enrollments", "attendances",
	} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("expected table %q after migration", table)
		}
	}
}

func TestExportDir(t *testing.T) {
	t.Setenv("FACULTY_CRM_EXPORT_DIR", "")
	if dir := ExportDir(); dir != "." {
		t.Fatalf("expected current directory by default, got %q", dir)
	}

	t.Setenv("FACULTY_CRM_EXPORT_DIR", "/tmp/exports")
	if dir := ExportDir(); dir != "/tmp/exports" {
		t.Fatalf("expected the configured directory, got %q", dir)
	}
}
