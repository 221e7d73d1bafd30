package console

import (
	"fmt"
	"sort"
	"strconv"
)

func (c *Console) reportsMenu() {
	for {
		choice := c.choose("Reports & Analytics", []string{
			"Dashboard Summary",
			"Faculty Workload Report",
			"Department Report",
			"Class Report",
			"Enrollment Report",
			"Room Utilization Report",
			"Export a Report",
		})
		switch choice {
		case 0:
			return
		case 1:
			c.dashboardReport()
		case 2:
			c.workloadReport()
		case 3:
			c.departmentReport()
		case 4:
			c.classReport()
		case 5:
			c.enrollmentReport()
		case 6:
			c.roomUtilizationReport()
		case 7:
			c.exportReport()
		}
	}
}

func (c *Console) dashboardReport() {
	c.header("System Overview")
	summary, err := c.Reports.Dashboard()
	if err != nil {
		c.printErr(err)
		return
	}

	fmt.Fprintf(c.out, "Faculty:            %d\n", summary.TotalFaculty)
	fmt.Fprintf(c.out, "Students:           %d\n", summary.TotalStudents)
	fmt.Fprintf(c.out, "Classes:            %d (%d active)\n", summary.TotalClasses, summary.ActiveClasses)
	fmt.Fprintf(c.out, "Departments:        %d\n", summary.TotalDepartments)
	fmt.Fprintf(c.out, "Enrollment:         %d / %d seats\n", summary.TotalEnrollment, summary.TotalCapacity)
	fmt.Fprintf(c.out, "Utilization:        %.2f%%\n", summary.UtilizationRate)
}

func (c *Console) workloadReport() {
	c.header("Faculty Workload Report")
	report, err := c.Reports.FacultyWorkload()
	if err != nil {
		c.printErr(err)
		return
	}

	rows := make([][]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(r.FacultyID), 10),
			r.Name, r.Department, r.EmployeeID,
			strconv.Itoa(r.TotalClasses), strconv.Itoa(r.TotalStudents),
			fmt.Sprintf("%.2f", r.AvgClassSize),
		})
	}
	c.renderTable([]string{"ID", "Name", "Department", "Employee ID", "Classes", "Students", "Avg Size"}, rows)
	fmt.Fprintf(c.out, "Average per faculty: %.2f classes, %.2f students\n",
		report.AvgClassesPerFaculty, report.AvgStudentsPerFaculty)
}

func (c *Console) departmentReport() {
	c.header("Department Report")
	departments, err := c.Reports.Departments()
	if err != nil {
		c.printErr(err)
		return
	}

	rows := make([][]string, 0, len(departments))
	for _, d := range departments {
		rows = append(rows, []string{
			d.Department, strconv.Itoa(d.FacultyCount), strconv.Itoa(d.ClassCount),
			strconv.Itoa(d.TotalEnrollment),
			fmt.Sprintf("%.2f", d.AvgClassSize),
			fmt.Sprintf("%.2f", d.ClassesPerFaculty),
		})
	}
	c.renderTable([]string{"Department", "Faculty", "Classes", "Enrollment", "Avg Size", "Classes/Faculty"}, rows)
}

func (c *Console) classReport() {
	c.header("Class Report")
	report, err := c.Reports.Classes()
	if err != nil {
		c.printErr(err)
		return
	}

	fmt.Fprintf(c.out, "Total classes:      %d (%d active)\n", report.TotalClasses, report.ActiveClasses)
	fmt.Fprintf(c.out, "Enrollment:         %d / %d seats\n", report.TotalEnrollment, report.TotalCapacity)
	fmt.Fprintf(c.out, "Utilization:        %.2f%%\n\n", report.OverallUtilization)

	rows := make([][]string, 0, len(report.Semesters))
	for _, s := range report.Semesters {
		rows = append(rows, []string{
			s.Term, strconv.Itoa(s.Classes), strconv.Itoa(s.Enrollment),
			strconv.Itoa(s.Capacity), fmt.Sprintf("%.2f%%", s.Utilization),
		})
	}
	c.renderTable([]string{"Semester", "Classes", "Enrollment", "Capacity", "Utilization"}, rows)
}

func (c *Console) enrollmentReport() {
	c.header("Enrollment Report")
	report, err := c.Reports.Enrollments()
	if err != nil {
		c.printErr(err)
		return
	}

	fmt.Fprintf(c.out, "Students: %d  Classes: %d  Enrollments: %d\n\n",
		report.TotalStudents, report.TotalClasses, report.TotalEnrollments)

	rows := make([][]string, 0, len(report.SemesterTrends))
	for _, s := range report.SemesterTrends {
		rows = append(rows, []string{
			s.Term, strconv.Itoa(s.Classes), strconv.Itoa(s.Enrollment),
			strconv.Itoa(s.Capacity), fmt.Sprintf("%.2f", s.Utilization),
		})
	}
	c.renderTable([]string{"Semester", "Classes", "Enrollment", "Capacity", "Avg Size"}, rows)

	loads := make([]int, 0, len(report.Distribution))
	for load := range report.Distribution {
		loads = append(loads, load)
	}
	sort.Ints(loads)
	fmt.Fprintln(c.out, "\nClasses per student:")
	for _, load := range loads {
		fmt.Fprintf(c.out, "  %d class(es): %d student(s)\n", load, report.Distribution[load])
	}
}

func (c *Console) roomUtilizationReport() {
	c.header("Room Utilization Report")
	rooms, err := c.Reports.RoomUtilization()
	if err != nil {
		c.printErr(err)
		return
	}

	rows := make([][]string, 0, len(rooms))
	for _, r := range rooms {
		rows = append(rows, []string{
			r.Room, strconv.Itoa(r.Classes), strconv.Itoa(r.TotalHours),
			fmt.Sprintf("%.2f%%", r.Utilization),
		})
	}
	c.renderTable([]string{"Room", "Classes", "Hours/Week", "Utilization"}, rows)
}

func (c *Console) exportReport() {
	choice := c.choose("Export which report?", []string{
		"Faculty Workload",
		"Room Utilization",
		"Class Report (semester breakdown)",
	})
	if choice == 0 {
		return
	}
	asXLSX := c.promptYesNo("Export as XLSX instead of CSV?")

	var (
		path string
		err  error
	)
	switch choice {
	case 1:
		path, err = c.Reports.ExportWorkload(c.ExportDir, asXLSX)
	case 2:
		path, err = c.Reports.ExportRoomUtilization(c.ExportDir, asXLSX)
	case 3:
		path, err = c.Reports.ExportSemesterBreakdown(c.ExportDir, asXLSX)
	}
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintf(c.out, "\nExported to %s\n", path)
}
