package managers

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"faculty-crm/internal/apperr"
	"faculty-crm/models"
)

type classFixture struct {
	auth     *AuthManager
	faculty  *FacultyManager
	courses  *CourseManager
	classes  *ClassManager
	students *StudentManager

	course *models.Course
	prof   *models.Faculty
}

func newClassFixture(t *testing.T) (*gorm.DB, *classFixture) {
	t.Helper()
	db := setupTestDB(t)
	auth := loginAdmin(t, db)
	f := &classFixture{
		auth:     auth,
		faculty:  NewFacultyManager(db, auth),
		courses:  NewCourseManager(db, auth),
		classes:  NewClassManager(db, auth),
		students: NewStudentManager(db, auth),
	}
	f.prof = createTestFaculty(t, f.faculty, 1)
	f.course = createTestCourse(t, f.courses, "CS101")
	return db, f
}

func TestClassCreate(t *testing.T) {
	_, f := newClassFixture(t)

	class := createTestClass(t, f.classes, f.course.ID, f.prof.ID, "cs101-a", 30)
	if class.ClassCode != "CS101-A" {
		t.Fatalf("class code should be uppercased, got %q", class.ClassCode)
	}
	if class.Status != models.ClassActive {
		t.Fatalf("new classes start active, got %q", class.Status)
	}

	// Duplicate class code.
	_, err := f.classes.Create(models.ClassInput{
		ClassCode: "CS101-A", CourseID: f.course.ID, FacultyID: f.prof.ID,
		Semester: "Fall", AcademicYear: "2025-2026", Room: "Room 102", MaxCapacity: 30,
	})
	if !errors.Is(err, apperr.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// Dangling course reference.
	_, err = f.classes.Create(models.ClassInput{
		ClassCode: "CS999-A", CourseID: 999, FacultyID: f.prof.ID,
		Semester: "Fall", AcademicYear: "2025-2026", Room: "Room 102", MaxCapacity: 30,
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing course, got %v", err)
	}
}

func TestEnrollAndDrop(t *testing.T) {
	_, f := newClassFixture(t)
	class := createTestClass(t, f.classes, f.course.ID, f.prof.ID, "CS101-A", 2)
	student := createTestStudent(t, f.students, 1)

	if err := f.classes.Enroll(student.ID, class.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	got, err := f.classes.Get(class.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CurrentEnrollment != 1 {
		t.Fatalf("expected enrollment counter 1, got %d", got.CurrentEnrollment)
	}

	// Enrolling twice is rejected.
	if err := f.classes.Enroll(student.ID, class.ID); !errors.Is(err, apperr.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	if err := f.classes.Drop(student.ID, class.ID); err != nil {
		t.Fatalf("drop: %v", err)
	}
	got, _ = f.classes.Get(class.ID)
	if got.CurrentEnrollment != 0 {
		t.Fatalf("expected counter back at 0, got %d", got.CurrentEnrollment)
	}

	// Dropping again is a not-found.
	if err := f.classes.Drop(student.ID, class.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// After the drop the student can re-enroll.
	if err := f.classes.Enroll(student.ID, class.ID); err != nil {
		t.Fatalf("re-enroll: %v", err)
	}
}

func TestEnrollCapacity(t *testing.T) {
	_, f := newClassFixture(t)
	class := createTestClass(t, f.classes, f.course.ID, f.prof.ID, "CS101-A", 2)

	s1 := createTestStudent(t, f.students, 1)
	s2 := createTestStudent(t, f.students, 2)
	s3 := createTestStudent(t, f.students, 3)

	if err := f.classes.Enroll(s1.ID, class.ID); err != nil {
		t.Fatalf("enroll s1: %v", err)
	}
	if err := f.classes.Enroll(s2.ID, class.ID); err != nil {
		t.Fatalf("enroll s2: %v", err)
	}
	if err := f.classes.Enroll(s3.ID, class.ID); !errors.Is(err, apperr.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}

	got, _ := f.classes.Get(class.ID)
	if got.CurrentEnrollment != 2 {
		t.Fatalf("counter must stay at capacity, got %d", got.CurrentEnrollment)
	}
}

func TestEnrollInactiveClass(t *testing.T) {
	_, f := newClassFixture(t)
	class := createTestClass(t, f.classes, f.course.ID, f.prof.ID, "CS101-A", 30)
	student := createTestStudent(t, f.students, 1)

	if err := f.classes.ChangeStatus(class.ID, models.ClassCompleted); err != nil {
		t.Fatalf("change status: %v", err)
	}
	if err := f.classes.Enroll(student.ID, class.ID); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation for a completed class, got %v", err)
	}
}

func TestClassUpdateCapacityFloor(t *testing.T) {
	_, f := newClassFixture(t)
	class := createTestClass(t, f.classes, f.course.ID, f.prof.ID, "CS101-A", 5)

	s1 := createTestStudent(t, f.students, 1)
	s2 := createTestStudent(t, f.students, 2)
	for _, s := range []*models.Student{s1, s2} {
		if err := f.classes.Enroll(s.ID, class.ID); err != nil {
			t.Fatalf("enroll: %v", err)
		}
	}

	one := 1
	if _, err := f.classes.Update(class.ID, models.ClassUpdate{MaxCapacity: &one}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("capacity below current enrollment must fail, got %v", err)
	}

	three := 3
	updated, err := f.classes.Update(class.ID, models.ClassUpdate{MaxCapacity: &three})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.MaxCapacity != 3 {
		t.Fatalf("expected capacity 3, got %d", updated.MaxCapacity)
	}
}

func TestRosterAndGrade(t *testing.T) {
	_, f := newClassFixture(t)
	class := createTestClass(t, f.classes, f.course.ID, f.prof.ID, "CS101-A", 30)
	student := createTestStudent(t, f.students, 1)

	if err := f.classes.Enroll(student.ID, class.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	roster, err := f.classes.Roster(class.ID)
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("expected 1 roster row, got %d", len(roster))
	}
	if roster[0].StudentID != student.ID || roster[0].StudentNumber != "S001" {
		t.Fatalf("unexpected roster row: %+v", roster[0])
	}
	if roster[0].Status != models.EnrollmentEnrolled {
		t.Fatalf("expected enrolled status, got %q", roster[0].Status)
	}

	if err := f.classes.SetGrade(student.ID, class.ID, "A"); err != nil {
		t.Fatalf("set grade: %v", err)
	}
	roster, _ = f.classes.Roster(class.ID)
	if roster[0].Grade != "A" || roster[0].Status != models.EnrollmentCompleted {
		t.Fatalf("grade not recorded: %+v", roster[0])
	}
}

func TestClassDeleteBlockedByEnrollments(t *testing.T) {
	_, f := newClassFixture(t)
	class := createTestClass(t, f.classes, f.course.ID, f.prof.ID, "CS101-A", 30)
	student := createTestStudent(t, f.students, 1)

	if err := f.classes.Enroll(student.ID, class.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if err := f.classes.Delete(class.ID); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation while enrollments exist, got %v", err)
	}

	if err := f.classes.Drop(student.ID, class.ID); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if err := f.classes.Delete(class.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.classes.Get(class.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("deleted class should be gone, got %v", err)
	}
}

func TestRecordAttendance(t *testing.T) {
	_, f := newClassFixture(t)
	class := createTestClass(t, f.classes, f.course.ID, f.prof.ID, "CS101-A", 30)
	student := createTestStudent(t, f.students, 1)
	day := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)

	// Not enrolled yet.
	err := f.classes.RecordAttendance(class.ID, student.ID, day, models.AttendancePresent, "")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for an unenrolled student, got %v", err)
	}

	if err := f.classes.Enroll(student.ID, class.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	if err := f.classes.RecordAttendance(class.ID, student.ID, day, "sleeping", ""); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation for a bad status, got %v", err)
	}

	if err := f.classes.RecordAttendance(class.ID, student.ID, day, models.AttendanceAbsent, "sick"); err != nil {
		t.Fatalf("record: %v", err)
	}
	// Same day again overwrites instead of duplicating.
	if err := f.classes.RecordAttendance(class.ID, student.ID, day.Add(2*time.Hour), models.AttendanceLate, ""); err != nil {
		t.Fatalf("re-record: %v", err)
	}

	rows, err := f.classes.ClassAttendance(class.ID)
	if err != nil {
		t.Fatalf("class attendance: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 attendance row after upsert, got %d", len(rows))
	}
	if rows[0].Status != models.AttendanceLate {
		t.Fatalf("expected the later status to win, got %q", rows[0].Status)
	}
}

func TestBySemester(t *testing.T) {
	_, f := newClassFixture(t)
	createTestClass(t, f.classes, f.course.ID, f.prof.ID, "CS101-A", 30)

	spring, err := f.classes.Create(models.ClassInput{
		ClassCode: "CS101-B", CourseID: f.course.ID, FacultyID: f.prof.ID,
		Semester: "Spring", AcademicYear: "2025-2026", Room: "Room 102", MaxCapacity: 30,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := f.classes.BySemester("spring", "2025-2026")
	if err != nil {
		t.Fatalf("by semester: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != spring.ID {
		t.Fatalf("expected only the spring class, got %+v", rows)
	}
}
