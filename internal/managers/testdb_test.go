package managers

import (
	"fmt"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"faculty-crm/config"
	"faculty-crm/internal/seed"
	"faculty-crm/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

// loginAdmin seeds the default admin and opens a session with it.
func loginAdmin(t *testing.T, db *gorm.DB) *AuthManager {
	t.Helper()
	if err := seed.EnsureDefaultAdmin(db); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	auth := NewAuthManager(db)
	if _, err := auth.Login(seed.DefaultAdminUsername, seed.DefaultAdminPassword); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	return auth
}

func createTestFaculty(t *testing.T, m *FacultyManager, n int) *models.Faculty {
	t.Helper()
	faculty, err := m.Create(models.FacultyInput{
		Username:       fmt.Sprintf("prof%d", n),
		Email:          fmt.Sprintf("prof%d@university.edu", n),
		Password:       "secret123",
		FirstName:      "Test",
		LastName:       fmt.Sprintf("Professor%d", n),
		EmployeeID:     fmt.Sprintf("F%03d", n),
		Department:     "Computer Science",
		Specialization: "Databases",
		Salary:         70000,
	})
	if err != nil {
		t.Fatalf("create faculty %d: %v", n, err)
	}
	return faculty
}

func createTestStudent(t *testing.T, m *StudentManager, n int) *models.Student {
	t.Helper()
	student, err := m.Create(models.StudentInput{
		Username:      fmt.Sprintf("student%d", n),
		Email:         fmt.Sprintf("student%d@student.university.edu", n),
		Password:      "secret123",
		FirstName:     "Test",
		LastName:      fmt.Sprintf("Student%d", n),
		StudentNumber: fmt.Sprintf("S%03d", n),
		Major:         "Computer Science",
		YearLevel:     2,
	})
	if err != nil {
		t.Fatalf("create student %d: %v", n, err)
	}
	return student
}

func createTestCourse(t *testing.T, m *CourseManager, code string) *models.Course {
	t.Helper()
	course, err := m.Create(models.CourseInput{
		CourseCode: code,
		CourseName: "Course " + code,
		Credits:    3,
		Department: "Computer Science",
	})
	if err != nil {
		t.Fatalf("create course %s: %v", code, err)
	}
	return course
}

func createTestClass(t *testing.T, m *ClassManager, courseID, facultyID uint, code string, capacity int) *models.Class {
	t.Helper()
	class, err := m.Create(models.ClassInput{
		ClassCode:    code,
		CourseID:     courseID,
		FacultyID:    facultyID,
		Semester:     "Fall",
		AcademicYear: "2025-2026",
		Room:         "Room 101",
		MaxCapacity:  capacity,
	})
	if err != nil {
		t.Fatalf("create class %s: %v", code, err)
	}
	return class
}
