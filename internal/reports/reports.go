// Package reports runs the read-only aggregate queries behind the Reports &
// Analytics menu and exports them as CSV or XLSX.
package reports

import (
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"faculty-crm/internal/apperr"
	"faculty-crm/internal/managers"
	"faculty-crm/models"
)

// Generator runs aggregate queries over the live database. All reports
// require the admin role.
type Generator struct {
	DB   *gorm.DB
	Auth *managers.AuthManager
}

func NewGenerator(db *gorm.DB, auth *managers.AuthManager) *Generator {
	return &Generator{DB: db, Auth: auth}
}

// Hours assumed per scheduled class per week, and room-hours available per
// week, for the utilization ratio.
const (
	HoursPerClassWeek  = 3
	RoomHoursAvailable = 40
)

type WorkloadRow struct {
	FacultyID     uint    `json:"facultyId"`
	Name          string  `json:"name"`
	Department    string  `json:"department"`
	EmployeeID    string  `json:"employeeId"`
	TotalClasses  int     `json:"totalClasses"`
	TotalStudents int     `json:"totalStudents"`
	AvgClassSize  float64 `json:"avgClassSize"`
}

type WorkloadReport struct {
	GeneratedAt           time.Time     `json:"generatedAt"`
	TotalFaculty          int           `json:"totalFaculty"`
	AvgClassesPerFaculty  float64       `json:"avgClassesPerFaculty"`
	AvgStudentsPerFaculty float64       `json:"avgStudentsPerFaculty"`
	Rows                  []WorkloadRow `json:"rows"`
}

// FacultyWorkload reports the active teaching load per faculty member,
// heaviest first.
func (g *Generator) FacultyWorkload() (*WorkloadReport, error) {
	if err := g.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}

	var rows []WorkloadRow
	err := g.DB.Table("faculties").
		Select(`faculties.id AS faculty_id,
			faculties.first_name || ' ' || faculties.last_name AS name,
			faculties.department, faculties.employee_id,
			COUNT(classes.id) AS total_classes,
			COALESCE(SUM(classes.current_enrollment), 0) AS total_students,
			ROUND(COALESCE(AVG(classes.current_enrollment), 0), 2) AS avg_class_size`).
		Joins(`LEFT JOIN classes ON classes.faculty_id = faculties.id
			AND classes.status = ? AND classes.deleted_at IS NULL`, models.ClassActive).
		Where("faculties.is_active = ? AND faculties.deleted_at IS NULL", true).
		Group("faculties.id").
		Order("total_students DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}

	report := WorkloadReport{GeneratedAt: time.Now(), TotalFaculty: len(rows), Rows: rows}
	if len(rows) > 0 {
		var classes, students int
		for _, row := range rows {
			classes += row.TotalClasses
			students += row.TotalStudents
		}
		report.AvgClassesPerFaculty = round2(float64(classes) / float64(len(rows)))
		report.AvgStudentsPerFaculty = round2(float64(students) / float64(len(rows)))
	}
	return &report, nil
}

type DepartmentRow struct {
	Department        string  `json:"department"`
	FacultyCount      int     `json:"facultyCount"`
	ClassCount        int     `json:"classCount"`
	TotalEnrollment   int     `json:"totalEnrollment"`
	AvgClassSize      float64 `json:"avgClassSize"`
	ClassesPerFaculty float64 `json:"classesPerFaculty"`
}

// Departments reports per-department faculty counts, class counts and
// enrollment, with derived class-size and workload averages.
func (g *Generator) Departments() ([]DepartmentRow, error) {
	if err := g.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}

	var rows []DepartmentRow
	err := g.DB.Table("faculties").
		Select(`faculties.department,
			COUNT(DISTINCT faculties.id) AS faculty_count,
			COUNT(DISTINCT classes.id) AS class_count,
			COALESCE(SUM(classes.current_enrollment), 0) AS total_enrollment`).
		Joins(`LEFT JOIN classes ON classes.faculty_id = faculties.id
			AND classes.status = ? AND classes.deleted_at IS NULL`, models.ClassActive).
		Where("faculties.is_active = ? AND faculties.deleted_at IS NULL", true).
		Group("faculties.department").
		Order("faculties.department").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}

	for i := range rows {
		if rows[i].ClassCount > 0 {
			rows[i].AvgClassSize = round2(float64(rows[i].TotalEnrollment) / float64(rows[i].ClassCount))
		}
		if rows[i].FacultyCount > 0 {
			rows[i].ClassesPerFaculty = round2(float64(rows[i].ClassCount) / float64(rows[i].FacultyCount))
		}
	}
	return rows, nil
}

type SemesterRow struct {
	Term        string  `json:"term"` // "2024-2025 Fall"
	Classes     int     `json:"classes"`
	Enrollment  int     `json:"enrollment"`
	Capacity    int     `json:"capacity"`
	Utilization float64 `json:"utilization"` // percent
}

type ClassReport struct {
	GeneratedAt        time.Time     `json:"generatedAt"`
	TotalClasses       int           `json:"totalClasses"`
	ActiveClasses      int           `json:"activeClasses"`
	TotalEnrollment    int           `json:"totalEnrollment"`
	TotalCapacity      int           `json:"totalCapacity"`
	OverallUtilization float64       `json:"overallUtilization"`
	Semesters          []SemesterRow `json:"semesters"`
}

// Classes reports enrollment against capacity overall and per term.
func (g *Generator) Classes() (*ClassReport, error) {
	if err := g.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}

	report := ClassReport{GeneratedAt: time.Now()}

	var totals struct {
		Total      int
		Active     int
		Enrollment int
		Capacity   int
	}
	err := g.DB.Model(&models.Class{}).
		Select(`COUNT(*) AS total,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS active,
			COALESCE(SUM(current_enrollment), 0) AS enrollment,
			COALESCE(SUM(max_capacity), 0) AS capacity`, models.ClassActive).
		Scan(&totals).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	report.TotalClasses = totals.Total
	report.ActiveClasses = totals.Active
	report.TotalEnrollment = totals.Enrollment
	report.TotalCapacity = totals.Capacity
	if totals.Capacity > 0 {
		report.OverallUtilization = round2(float64(totals.Enrollment) / float64(totals.Capacity) * 100)
	}

	err = g.DB.Model(&models.Class{}).
		Select(`academic_year || ' ' || semester AS term,
			COUNT(*) AS classes,
			COALESCE(SUM(current_enrollment), 0) AS enrollment,
			COALESCE(SUM(max_capacity), 0) AS capacity`).
		Group("academic_year, semester").
		Order("academic_year DESC, semester").
		Scan(&report.Semesters).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	for i := range report.Semesters {
		if report.Semesters[i].Capacity > 0 {
			report.Semesters[i].Utilization = round2(
				float64(report.Semesters[i].Enrollment) / float64(report.Semesters[i].Capacity) * 100)
		}
	}
	return &report, nil
}

type RoomRow struct {
	Room        string  `json:"room"`
	Classes     int     `json:"classes"`
	TotalHours  int     `json:"totalHours"`
	Utilization float64 `json:"utilization"` // percent of available room-hours
}

// RoomUtilization reports scheduled class-hours per room against the
// available room-hours per week, busiest rooms first.
func (g *Generator) RoomUtilization() ([]RoomRow, error) {
	if err := g.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}

	var rows []RoomRow
	err := g.DB.Model(&models.Class{}).
		Select("room, COUNT(*) AS classes").
		Where("status = ?", models.ClassActive).
		Group("room").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}

	for i := range rows {
		rows[i].TotalHours = rows[i].Classes * HoursPerClassWeek
		rows[i].Utilization = round2(float64(rows[i].TotalHours) / RoomHoursAvailable * 100)
	}
	sortRoomsByUtilization(rows)
	return rows, nil
}

type EnrollmentReport struct {
	GeneratedAt      time.Time     `json:"generatedAt"`
	TotalStudents    int           `json:"totalStudents"`
	TotalClasses     int           `json:"totalClasses"`
	TotalEnrollments int           `json:"totalEnrollments"`
	SemesterTrends   []SemesterRow `json:"semesterTrends"`
	// Distribution maps classes-per-student to the number of students
	// carrying that load.
	Distribution map[int]int `json:"distribution"`
}

// Enrollments reports per-term enrollment trends and how many classes each
// student carries.
func (g *Generator) Enrollments() (*EnrollmentReport, error) {
	if err := g.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}

	report := EnrollmentReport{GeneratedAt: time.Now(), Distribution: map[int]int{}}

	var counts struct {
		Students    int64
		Classes     int64
		Enrollments int64
	}
	if err := g.DB.Model(&models.Student{}).Where("is_active = ?", true).Count(&counts.Students).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	if err := g.DB.Model(&models.Class{}).Count(&counts.Classes).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	if err := g.DB.Model(&models.Enrollment{}).Count(&counts.Enrollments).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	report.TotalStudents = int(counts.Students)
	report.TotalClasses = int(counts.Classes)
	report.TotalEnrollments = int(counts.Enrollments)

	err := g.DB.Model(&models.Class{}).
		Select(`academic_year || ' ' || semester AS term,
			COUNT(*) AS classes,
			COALESCE(SUM(current_enrollment), 0) AS enrollment,
			COALESCE(SUM(max_capacity), 0) AS capacity`).
		Group("academic_year, semester").
		Order("academic_year DESC, semester").
		Scan(&report.SemesterTrends).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	for i := range report.SemesterTrends {
		row := &report.SemesterTrends[i]
		if row.Classes > 0 {
			// Utilization doubles as avg class size in the trends view.
			row.Utilization = round2(float64(row.Enrollment) / float64(row.Classes))
		}
	}

	var perStudent []struct {
		StudentID uint
		N         int
	}
	err = g.DB.Table("students").
		Select("students.id AS student_id, COUNT(enrollments.id) AS n").
		Joins("LEFT JOIN enrollments ON enrollments.student_id = students.id AND enrollments.deleted_at IS NULL").
		Where("students.is_active = ? AND students.deleted_at IS NULL", true).
		Group("students.id").
		Scan(&perStudent).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	for _, s := range perStudent {
		report.Distribution[s.N]++
	}
	return &report, nil
}

type DashboardSummary struct {
	GeneratedAt      time.Time `json:"generatedAt"`
	TotalFaculty     int       `json:"totalFaculty"`
	TotalStudents    int       `json:"totalStudents"`
	TotalClasses     int       `json:"totalClasses"`
	ActiveClasses    int       `json:"activeClasses"`
	TotalDepartments int       `json:"totalDepartments"`
	TotalEnrollment  int       `json:"totalEnrollment"`
	TotalCapacity    int       `json:"totalCapacity"`
	UtilizationRate  float64   `json:"utilizationRate"`
}

// Dashboard computes the key totals for the landing screen.
func (g *Generator) Dashboard() (*DashboardSummary, error) {
	if err := g.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}

	summary := DashboardSummary{GeneratedAt: time.Now()}

	var n int64
	if err := g.DB.Model(&models.Faculty{}).Where("is_active = ?", true).Count(&n).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	summary.TotalFaculty = int(n)
	if err := g.DB.Model(&models.Student{}).Where("is_active = ?", true).Count(&n).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	summary.TotalStudents = int(n)
	err := g.DB.Model(&models.Faculty{}).
		Where("is_active = ?", true).
		Distinct("department").
		Count(&n).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	summary.TotalDepartments = int(n)

	var totals struct {
		Total      int
		Active     int
		Enrollment int
		Capacity   int
	}
	err = g.DB.Model(&models.Class{}).
		Select(`COUNT(*) AS total,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS active,
			COALESCE(SUM(current_enrollment), 0) AS enrollment,
			COALESCE(SUM(max_capacity), 0) AS capacity`, models.ClassActive).
		Scan(&totals).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	summary.TotalClasses = totals.Total
	summary.ActiveClasses = totals.Active
	summary.TotalEnrollment = totals.Enrollment
	summary.TotalCapacity = totals.Capacity
	if totals.Capacity > 0 {
		summary.UtilizationRate = round2(float64(totals.Enrollment) / float64(totals.Capacity) * 100)
	}
	return &summary, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func sortRoomsByUtilization(rows []RoomRow) {
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Utilization > rows[j].Utilization
	})
}
