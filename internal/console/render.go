package console

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"faculty-crm/internal/managers"
	"faculty-crm/models"
)

func (c *Console) renderTable(header []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(c.out, "No records found.")
		return
	}
	table := tablewriter.NewWriter(c.out)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(rows)
	table.Render()
}

func (c *Console) renderPageInfo(info managers.PageInfo) {
	fmt.Fprintf(c.out, "Page %d of %d (%d records)\n",
		info.CurrentPage, info.TotalPages, info.TotalRows)
}

func (c *Console) renderFaculty(list []models.Faculty) {
	rows := make([][]string, 0, len(list))
	for _, f := range list {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(f.ID), 10),
			f.FullName(), f.EmployeeID, f.Department, f.Specialization, f.Phone,
		})
	}
	c.renderTable([]string{"ID", "Name", "Employee ID", "Department", "Specialization", "Phone"}, rows)
}

func (c *Console) renderStudents(list []models.Student) {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(s.ID), 10),
			s.FullName(), s.StudentNumber, s.Major,
			strconv.Itoa(s.YearLevel), s.Email,
		})
	}
	c.renderTable([]string{"ID", "Name", "Student ID", "Major", "Year", "Email"}, rows)
}

func (c *Console) renderCourses(list []models.Course) {
	rows := make([][]string, 0, len(list))
	for _, course := range list {
		prereqs := ""
		for i, p := range course.Prerequisites {
			if i > 0 {
				prereqs += ", "
			}
			prereqs += p
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(course.ID), 10),
			course.CourseCode, course.CourseName, course.Department,
			strconv.Itoa(course.Credits), prereqs,
		})
	}
	c.renderTable([]string{"ID", "Code", "Title", "Department", "Credits", "Prerequisites"}, rows)
}

func (c *Console) renderClassRows(list []models.ClassRow) {
	rows := make([][]string, 0, len(list))
	for _, cl := range list {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(cl.ID), 10),
			cl.ClassCode, cl.CourseName, cl.FacultyName, cl.Semester, cl.Room,
			fmt.Sprintf("%d/%d", cl.CurrentEnrollment, cl.MaxCapacity), cl.Status,
		})
	}
	c.renderTable([]string{"ID", "Code", "Course", "Faculty", "Semester", "Room", "Enrollment", "Status"}, rows)
}

func (c *Console) renderRoster(list []models.RosterRow) {
	rows := make([][]string, 0, len(list))
	for _, r := range list {
		rows = append(rows, []string{
			r.StudentNumber, r.Name, r.Major, strconv.Itoa(r.YearLevel),
			r.EnrolledAt.Format("2006-01-02"), r.Grade, r.Status,
		})
	}
	c.renderTable([]string{"Student ID", "Name", "Major", "Year", "Enrolled", "Grade", "Status"}, rows)
}

func (c *Console) renderStudentClasses(list []models.StudentClassRow) {
	rows := make([][]string, 0, len(list))
	for _, r := range list {
		rows = append(rows, []string{
			r.ClassCode, r.CourseName, r.FacultyName, r.Semester,
			r.AcademicYear, r.Schedule, r.Room, r.Grade, r.Status,
		})
	}
	c.renderTable([]string{"Code", "Course", "Faculty", "Semester", "Year", "Schedule", "Room", "Grade", "Status"}, rows)
}

func (c *Console) renderAttendance(list []models.AttendanceRow) {
	rows := make([][]string, 0, len(list))
	for _, r := range list {
		rows = append(rows, []string{
			r.Date.Format("2006-01-02"), r.ClassCode, r.StudentNumber,
			r.Name, r.Status, r.Notes,
		})
	}
	c.renderTable([]string{"Date", "Class", "Student ID", "Name", "Status", "Notes"}, rows)
}
