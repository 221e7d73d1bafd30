package reports

import (
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"faculty-crm/config"
	"faculty-crm/internal/apperr"
	"faculty-crm/internal/managers"
	"faculty-crm/internal/seed"
)

// setupDemoDB loads the demo data set, which the report assertions below
// are written against: 6 faculty, 8 students, 5 classes (4 active) and
// 9 enrollments.
func setupDemoDB(t *testing.T) (*gorm.DB, *Generator) {
	t.Helper()
	db, err := config.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := seed.EnsureDefaultAdmin(db); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if err := seed.LoadDemoData(db); err != nil {
		t.Fatalf("load demo data: %v", err)
	}

	auth := managers.NewAuthManager(db)
	if _, err := auth.Login(seed.DefaultAdminUsername, seed.DefaultAdminPassword); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	return db, NewGenerator(db, auth)
}

func TestReportsRequireAdmin(t *testing.T) {
	db, _ := setupDemoDB(t)

	g := NewGenerator(db, managers.NewAuthManager(db))
	if _, err := g.Dashboard(); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if _, err := g.FacultyWorkload(); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if _, err := g.ExportFaculty(t.TempDir(), false); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestDashboard(t *testing.T) {
	_, g := setupDemoDB(t)

	summary, err := g.Dashboard()
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if summary.TotalFaculty != 6 {
		t.Fatalf("expected 6 faculty, got %d", summary.TotalFaculty)
	}
	if summary.TotalStudents != 8 {
		t.Fatalf("expected 8 students, got %d", summary.TotalStudents)
	}
	if summary.TotalClasses != 5 || summary.ActiveClasses != 4 {
		t.Fatalf("expected 5 classes (4 active), got %d (%d)", summary.TotalClasses, summary.ActiveClasses)
	}
	if summary.TotalDepartments != 6 {
		t.Fatalf("expected 6 departments, got %d", summary.TotalDepartments)
	}
	if summary.TotalEnrollment != 9 || summary.TotalCapacity != 140 {
		t.Fatalf("expected 9/140 seats, got %d/%d", summary.TotalEnrollment, summary.TotalCapacity)
	}
	if summary.UtilizationRate != 6.43 {
		t.Fatalf("expected utilization 6.43, got %v", summary.UtilizationRate)
	}
}

func TestFacultyWorkloadReport(t *testing.T) {
	_, g := setupDemoDB(t)

	report, err := g.FacultyWorkload()
	if err != nil {
		t.Fatalf("workload: %v", err)
	}
	if report.TotalFaculty != 6 {
		t.Fatalf("expected 6 rows, got %d", report.TotalFaculty)
	}

	// John Doe teaches the two CS classes with 3 + 2 students and sorts
	// first.
	top := report.Rows[0]
	if top.EmployeeID != "F001" {
		t.Fatalf("expected F001 on top, got %+v", top)
	}
	if top.TotalClasses != 2 || top.TotalStudents != 5 {
		t.Fatalf("expected 2 classes and 5 students, got %+v", top)
	}
	if top.AvgClassSize != 2.5 {
		t.Fatalf("expected avg class size 2.5, got %v", top.AvgClassSize)
	}

	// (2+1+1)/6 classes, (5+2+1)/6 students.
	if report.AvgClassesPerFaculty != 0.67 {
		t.Fatalf("expected 0.67 classes per faculty, got %v", report.AvgClassesPerFaculty)
	}
	if report.AvgStudentsPerFaculty != 1.33 {
		t.Fatalf("expected 1.33 students per faculty, got %v", report.AvgStudentsPerFaculty)
	}
}

func TestDepartmentsReport(t *testing.T) {
	_, g := setupDemoDB(t)

	rows, err := g.Departments()
	if err != nil {
		t.Fatalf("departments: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("expected 6 departments, got %d", len(rows))
	}

	byName := map[string]DepartmentRow{}
	for _, row := range rows {
		byName[row.Department] = row
	}
	cs := byName["Computer Science"]
	if cs.FacultyCount != 1 || cs.ClassCount != 2 || cs.TotalEnrollment != 5 {
		t.Fatalf("unexpected CS row: %+v", cs)
	}
	if cs.AvgClassSize != 2.5 || cs.ClassesPerFaculty != 2 {
		t.Fatalf("unexpected CS averages: %+v", cs)
	}

	// English's only class is completed, so it aggregates to zero.
	english := byName["English"]
	if english.ClassCount != 0 || english.TotalEnrollment != 0 {
		t.Fatalf("completed classes must not count: %+v", english)
	}
}

func TestClassReport(t *testing.T) {
	_, g := setupDemoDB(t)

	report, err := g.Classes()
	if err != nil {
		t.Fatalf("classes: %v", err)
	}
	if report.TotalClasses != 5 || report.ActiveClasses != 4 {
		t.Fatalf("expected 5 classes (4 active), got %d (%d)", report.TotalClasses, report.ActiveClasses)
	}
	if report.OverallUtilization != 6.43 {
		t.Fatalf("expected utilization 6.43, got %v", report.OverallUtilization)
	}
	if len(report.Semesters) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(report.Semesters))
	}

	// Newest academic year first.
	fall := report.Semesters[0]
	if fall.Term != "2025-2026 Fall" {
		t.Fatalf("expected the fall term first, got %q", fall.Term)
	}
	if fall.Classes != 4 || fall.Enrollment != 8 || fall.Capacity != 110 {
		t.Fatalf("unexpected fall totals: %+v", fall)
	}
	if fall.Utilization != 7.27 {
		t.Fatalf("expected fall utilization 7.27, got %v", fall.Utilization)
	}
}

func TestRoomUtilizationReport(t *testing.T) {
	_, g := setupDemoDB(t)

	rooms, err := g.RoomUtilization()
	if err != nil {
		t.Fatalf("rooms: %v", err)
	}
	// Four active classes in four distinct rooms; the completed class's
	// room does not appear.
	if len(rooms) != 4 {
		t.Fatalf("expected 4 rooms, got %d", len(rooms))
	}
	for _, room := range rooms {
		if room.Room == "Room 301" {
			t.Fatal("completed class rooms must be excluded")
		}
		if room.Classes != 1 || room.TotalHours != 3 {
			t.Fatalf("unexpected room row: %+v", room)
		}
		if room.Utilization != 7.5 {
			t.Fatalf("expected 7.5%% utilization, got %v", room.Utilization)
		}
	}
}

func TestEnrollmentReport(t *testing.T) {
	_, g := setupDemoDB(t)

	report, err := g.Enrollments()
	if err != nil {
		t.Fatalf("enrollments: %v", err)
	}
	if report.TotalStudents != 8 || report.TotalClasses != 5 || report.TotalEnrollments != 9 {
		t.Fatalf("unexpected totals: %+v", report)
	}

	// 2 students with no classes, 3 with one, 3 with two.
	want := map[int]int{0: 2, 1: 3, 2: 3}
	if len(report.Distribution) != len(want) {
		t.Fatalf("unexpected distribution: %v", report.Distribution)
	}
	for load, students := range want {
		if report.Distribution[load] != students {
			t.Fatalf("expected %d students with %d classes, got %d", students, load, report.Distribution[load])
		}
	}
}
