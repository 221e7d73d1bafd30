package managers

import (
	"errors"
	"testing"
	"time"

	"faculty-crm/internal/apperr"
	"faculty-crm/models"
)

func TestStudentCreateAndSearch(t *testing.T) {
	db := setupTestDB(t)
	auth := loginAdmin(t, db)
	sm := NewStudentManager(db, auth)

	created := createTestStudent(t, sm, 1)
	if created.ID == 0 || created.UserID == 0 {
		t.Fatalf("expected persisted student and account, got %+v", created)
	}

	hits, err := sm.Search("s001")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != created.ID {
		t.Fatalf("expected the created student, got %+v", hits)
	}

	byMajor, err := sm.ByMajor("Computer Science")
	if err != nil {
		t.Fatalf("by major: %v", err)
	}
	if len(byMajor) != 1 {
		t.Fatalf("expected 1 student, got %d", len(byMajor))
	}

	byYear, err := sm.ByYearLevel(2)
	if err != nil {
		t.Fatalf("by year level: %v", err)
	}
	if len(byYear) != 1 {
		t.Fatalf("expected 1 student in year 2, got %d", len(byYear))
	}
}

func TestStudentDuplicateNumber(t *testing.T) {
	db := setupTestDB(t)
	auth := loginAdmin(t, db)
	sm := NewStudentManager(db, auth)

	createTestStudent(t, sm, 1)
	_, err := sm.Create(models.StudentInput{
		Username:      "other1",
		Email:         "other1@student.university.edu",
		Password:      "secret123",
		FirstName:     "Other",
		LastName:      "Student",
		StudentNumber: "S001",
		Major:         "Physics",
		YearLevel:     1,
	})
	if !errors.Is(err, apperr.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestStudentUpdateYearLevelBounds(t *testing.T) {
	db := setupTestDB(t)
	auth := loginAdmin(t, db)
	sm := NewStudentManager(db, auth)

	created := createTestStudent(t, sm, 1)

	nine := 9
	if _, err := sm.Update(created.ID, models.StudentUpdate{YearLevel: &nine}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation for year 9, got %v", err)
	}

	three := 3
	updated, err := sm.Update(created.ID, models.StudentUpdate{YearLevel: &three})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.YearLevel != 3 {
		t.Fatalf("expected year 3, got %d", updated.YearLevel)
	}
}

func TestStudentDeactivateKeepsHistory(t *testing.T) {
	db := setupTestDB(t)
	auth := loginAdmin(t, db)
	sm := NewStudentManager(db, auth)
	fm := NewFacultyManager(db, auth)
	cm := NewCourseManager(db, auth)
	clm := NewClassManager(db, auth)

	prof := createTestFaculty(t, fm, 1)
	course := createTestCourse(t, cm, "CS101")
	class := createTestClass(t, clm, course.ID, prof.ID, "CS101-A", 30)
	student := createTestStudent(t, sm, 1)

	if err := clm.Enroll(student.ID, class.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if err := sm.Deactivate(student.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, err := sm.Get(student.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("deactivated student should not be found, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Enrollment{}).Where("student_id = ?", student.ID).Count(&count).Error; err != nil {
		t.Fatalf("count enrollments: %v", err)
	}
	if count != 1 {
		t.Fatal("enrollment history must survive deactivation")
	}
}

func TestStudentEnrollmentsVisibility(t *testing.T) {
	db := setupTestDB(t)
	auth := loginAdmin(t, db)
	sm := NewStudentManager(db, auth)
	fm := NewFacultyManager(db, auth)
	cm := NewCourseManager(db, auth)
	clm := NewClassManager(db, auth)

	prof := createTestFaculty(t, fm, 1)
	course := createTestCourse(t, cm, "CS101")
	class := createTestClass(t, clm, course.ID, prof.ID, "CS101-A", 30)
	s1 := createTestStudent(t, sm, 1)
	s2 := createTestStudent(t, sm, 2)

	if err := clm.Enroll(s1.ID, class.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	// Admin sees any schedule.
	rows, err := sm.Enrollments(s1.ID)
	if err != nil {
		t.Fatalf("enrollments: %v", err)
	}
	if len(rows) != 1 || rows[0].ClassCode != "CS101-A" {
		t.Fatalf("unexpected schedule: %+v", rows)
	}
	if rows[0].CourseName != "Course CS101" || rows[0].FacultyName != "Test Professor1" {
		t.Fatalf("joined names missing: %+v", rows[0])
	}

	// A student only sees their own.
	studentAuth := NewAuthManager(db)
	if _, err := studentAuth.Login("student1", "secret123"); err != nil {
		t.Fatalf("student login: %v", err)
	}
	studentView := NewStudentManager(db, studentAuth)

	if _, err := studentView.Enrollments(s1.ID); err != nil {
		t.Fatalf("own schedule: %v", err)
	}
	if _, err := studentView.Enrollments(s2.ID); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for another student's schedule, got %v", err)
	}
}

func TestAttendanceSummary(t *testing.T) {
	db := setupTestDB(t)
	auth := loginAdmin(t, db)
	sm := NewStudentManager(db, auth)
	fm := NewFacultyManager(db, auth)
	cm := NewCourseManager(db, auth)
	clm := NewClassManager(db, auth)

	prof := createTestFaculty(t, fm, 1)
	course := createTestCourse(t, cm, "CS101")
	class := createTestClass(t, clm, course.ID, prof.ID, "CS101-A", 30)
	student := createTestStudent(t, sm, 1)

	if err := clm.Enroll(student.ID, class.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sessions := []string{
		models.AttendancePresent,
		models.AttendancePresent,
		models.AttendanceLate,
		models.AttendanceAbsent,
	}
	for i, status := range sessions {
		day := base.AddDate(0, 0, i)
		if err := clm.RecordAttendance(class.ID, student.ID, day, status, ""); err != nil {
			t.Fatalf("record session %d: %v", i, err)
		}
	}

	summary, err := sm.AttendanceSummary(student.ID, class.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Sessions != 4 || summary.Present != 2 || summary.Late != 1 || summary.Absent != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	// Present and late both count as attended: 3 of 4.
	if summary.Rate != 75 {
		t.Fatalf("expected rate 75, got %v", summary.Rate)
	}
}
