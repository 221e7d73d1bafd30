package config

import (
	"log/slog"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"faculty-crm/models"
)

var DB *gorm.DB

// DefaultDBPath is used when FACULTY_CRM_DB is not set.
const DefaultDBPath = "faculty_management.db"

// Open opens (or creates) the SQLite database at path and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	// SQLite does not enforce foreign keys unless asked to; the DSN option
	// applies it to every pooled connection.
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Faculty{},
		&models.Course{},
		&models.Class{},
		&models.Student{},
		&models.Enrollment{},
		&models.Attendance{},
	); err != nil {
		return nil, err
	}

	return db, nil
}

// ConnectDB initializes the package-level DB from the FACULTY_CRM_DB
// environment variable. A storage failure at startup is fatal.
func ConnectDB() {
	path := os.Getenv("FACULTY_CRM_DB")
	if path == "" {
		path = DefaultDBPath
	}

	db, err := Open(path)
	if err != nil {
		slog.Error("failed to open database", "path", path, "error", err)
		os.Exit(1)
	}

	DB = db
	slog.Info("database ready", "path", path)
}

// ExportDir returns the directory CSV/XLSX exports are written to.
func ExportDir() string {
	dir := os.Getenv("FACULTY_CRM_EXPORT_DIR")
	if dir == "" {
		dir = "."
	}
	return dir
}
