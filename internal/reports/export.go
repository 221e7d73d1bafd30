package reports

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"faculty-crm/internal/apperr"
	"faculty-crm/models"
)

// writeCSV writes a header row plus one row per record, so a file with N
// records always has N+1 lines.
func writeCSV(dir, prefix string, header []string, rows [][]string) (string, error) {
	name := fmt.Sprintf("%s_%s.csv", prefix, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", apperr.Storage(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", apperr.Storage(err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", apperr.Storage(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", apperr.Storage(err)
	}

	slog.Info("csv exported", "path", path, "records", len(rows))
	return path, nil
}

// writeXLSX mirrors writeCSV as a spreadsheet, one sheet, header in row 1.
func writeXLSX(dir, prefix, sheet string, header []string, rows [][]string) (string, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", apperr.Storage(err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	name := fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", apperr.Storage(err)
	}

	slog.Info("xlsx exported", "path", path, "records", len(rows))
	return path, nil
}

// ExportFaculty writes the active faculty roster. Columns match the
// on-screen faculty table.
func (g *Generator) ExportFaculty(dir string, asXLSX bool) (string, error) {
	if err := g.Auth.Require(models.RoleAdmin); err != nil {
		return "", err
	}

	var list []models.Faculty
	err := g.DB.Where("is_active = ?", true).
		Order("last_name, first_name").
		Find(&list).Error
	if err != nil {
		return "", apperr.Storage(err)
	}

	header := []string{"ID", "First Name", "Last Name", "Employee ID", "Department",
		"Specialization", "Phone", "Office", "Salary", "Hire Date"}
	rows := make([][]string, 0, len(list))
	for _, f := range list {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(f.ID), 10),
			f.FirstName, f.LastName, f.EmployeeID, f.Department,
			f.Specialization, f.Phone, f.OfficeLocation,
			strconv.FormatFloat(f.Salary, 'f', 2, 64),
			f.HireDate.Format("2006-01-02"),
		})
	}

	if asXLSX {
		return writeXLSX(dir, "faculty_export", "Faculty", header, rows)
	}
	return writeCSV(dir, "faculty_export", header, rows)
}

// ExportStudents writes the active student roster.
func (g *Generator) ExportStudents(dir string, asXLSX bool) (string, error) {
	if err := g.Auth.Require(models.RoleAdmin); err != nil {
		return "", err
	}

	var list []models.Student
	err := g.DB.Where("is_active = ?", true).
		Order("last_name, first_name").
		Find(&list).Error
	if err != nil {
		return "", apperr.Storage(err)
	}

	header := []string{"ID", "First Name", "Last Name", "Student ID", "Major",
		"Year", "Phone", "Email", "Enrolled Since"}
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(s.ID), 10),
			s.FirstName, s.LastName, s.StudentNumber, s.Major,
			strconv.Itoa(s.YearLevel), s.Phone, s.Email,
			s.EnrollmentDate.Format("2006-01-02"),
		})
	}

	if asXLSX {
		return writeXLSX(dir, "student_export", "Students", header, rows)
	}
	return writeCSV(dir, "student_export", header, rows)
}

// ExportClasses writes the joined class listing.
func (g *Generator) ExportClasses(dir string, asXLSX bool) (string, error) {
	if err := g.Auth.Require(models.RoleAdmin); err != nil {
		return "", err
	}

	var list []models.ClassRow
	err := g.DB.Table("classes").
		Select(`classes.id, classes.class_code, courses.course_name,
			faculties.first_name || ' ' || faculties.last_name AS faculty_name,
			classes.semester, classes.academic_year, classes.schedule, classes.room,
			classes.current_enrollment, classes.max_capacity, classes.status`).
		Joins("JOIN courses ON courses.id = classes.course_id").
		Joins("JOIN faculties ON faculties.id = classes.faculty_id").
		Where("classes.deleted_at IS NULL").
		Order("classes.academic_year DESC, classes.semester, classes.class_code").
		Scan(&list).Error
	if err != nil {
		return "", apperr.Storage(err)
	}

	header := []string{"ID", "Code", "Course", "Faculty", "Semester", "Year",
		"Schedule", "Room", "Enrollment", "Capacity", "Status"}
	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(c.ID), 10),
			c.ClassCode, c.CourseName, c.FacultyName, c.Semester, c.AcademicYear,
			c.Schedule, c.Room,
			strconv.Itoa(c.CurrentEnrollment), strconv.Itoa(c.MaxCapacity), c.Status,
		})
	}

	if asXLSX {
		return writeXLSX(dir, "class_export", "Classes", header, rows)
	}
	return writeCSV(dir, "class_export", header, rows)
}

// ExportWorkload writes the faculty workload report.
func (g *Generator) ExportWorkload(dir string, asXLSX bool) (string, error) {
	report, err := g.FacultyWorkload()
	if err != nil {
		return "", err
	}

	header := []string{"ID", "Name", "Department", "Employee ID", "Classes",
		"Students", "Avg Class Size"}
	rows := make([][]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(r.FacultyID), 10),
			r.Name, r.Department, r.EmployeeID,
			strconv.Itoa(r.TotalClasses), strconv.Itoa(r.TotalStudents),
			strconv.FormatFloat(r.AvgClassSize, 'f', 2, 64),
		})
	}

	if asXLSX {
		return writeXLSX(dir, "faculty_workload_report", "Workload", header, rows)
	}
	return writeCSV(dir, "faculty_workload_report", header, rows)
}

// ExportRoomUtilization writes the room utilization report.
func (g *Generator) ExportRoomUtilization(dir string, asXLSX bool) (string, error) {
	rooms, err := g.RoomUtilization()
	if err != nil {
		return "", err
	}

	header := []string{"Room", "Classes", "Total Hours", "Utilization Rate"}
	rows := make([][]string, 0, len(rooms))
	for _, r := range rooms {
		rows = append(rows, []string{
			r.Room, strconv.Itoa(r.Classes), strconv.Itoa(r.TotalHours),
			strconv.FormatFloat(r.Utilization, 'f', 2, 64) + "%",
		})
	}

	if asXLSX {
		return writeXLSX(dir, "room_utilization_report", "Rooms", header, rows)
	}
	return writeCSV(dir, "room_utilization_report", header, rows)
}

// ExportSemesterBreakdown writes the per-term class report.
func (g *Generator) ExportSemesterBreakdown(dir string, asXLSX bool) (string, error) {
	report, err := g.Classes()
	if err != nil {
		return "", err
	}

	header := []string{"Semester", "Classes", "Enrollment", "Capacity", "Utilization"}
	rows := make([][]string, 0, len(report.Semesters))
	for _, s := range report.Semesters {
		rows = append(rows, []string{
			s.Term, strconv.Itoa(s.Classes), strconv.Itoa(s.Enrollment),
			strconv.Itoa(s.Capacity),
			strconv.FormatFloat(s.Utilization, 'f', 2, 64) + "%",
		})
	}

	if asXLSX {
		return writeXLSX(dir, "class_report", "Semesters", header, rows)
	}
	return writeCSV(dir, "class_report", header, rows)
}
