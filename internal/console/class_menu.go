package console

import (
	"fmt"

	"faculty-crm/models"
)

func (c *Console) courseMenu() {
	for {
		choice := c.choose("Course Catalog", []string{
			"Add New Course",
			"View All Courses",
			"Update Course",
		})
		switch choice {
		case 0:
			return
		case 1:
			c.addCourse()
		case 2:
			c.viewAllCourses()
		case 3:
			c.updateCourse()
		}
	}
}

func (c *Console) addCourse() {
	c.header("Add New Course")

	input := models.CourseInput{
		CourseCode:  c.promptString("Course Code"),
		CourseName:  c.promptString("Course Title"),
		Description: c.promptOptional("Description"),
		Credits:     c.promptInt("Credits"),
		Department:  c.promptString("Department"),
	}
	for {
		prereq := c.promptOptional("Prerequisite course code")
		if prereq == "" {
			break
		}
		input.Prerequisites = append(input.Prerequisites, prereq)
	}

	course, err := c.Courses.Create(input)
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintf(c.out, "\nCourse %s created (id %d).\n", course.CourseCode, course.ID)
}

func (c *Console) viewAllCourses() {
	c.header("Course Catalog")
	list, err := c.Courses.List()
	if err != nil {
		c.printErr(err)
		return
	}
	c.renderCourses(list)
}

func (c *Console) updateCourse() {
	c.header("Update Course")
	id := c.promptUint("Course ID")

	current, err := c.Courses.Get(id)
	if err != nil {
		c.printErr(err)
		return
	}

	input := models.CourseInput{
		CourseCode:    current.CourseCode,
		CourseName:    c.promptString("Course Title"),
		Description:   c.promptOptional("Description"),
		Credits:       c.promptInt("Credits"),
		Department:    c.promptString("Department"),
		Prerequisites: current.Prerequisites,
	}
	if _, err := c.Courses.Update(id, input); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, "\nCourse updated.")
}

func (c *Console) classMenu() {
	for {
		choice := c.choose("Class Management", []string{
			"Add New Class",
			"View All Classes",
			"Search Classes",
			"Update Class",
			"Change Class Status",
			"Enroll Student",
			"Drop Student",
			"View Class Roster",
			"Mark Attendance",
			"Delete Class",
			"Export Class Data",
		})
		switch choice {
		case 0:
			return
		case 1:
			c.addClass()
		case 2:
			c.viewAllClasses()
		case 3:
			c.searchClasses()
		case 4:
			c.updateClass()
		case 5:
			c.changeClassStatus()
		case 6:
			c.enrollStudent()
		case 7:
			c.dropStudent()
		case 8:
			c.viewRoster()
		case 9:
			c.markAttendance()
		case 10:
			c.deleteClass()
		case 11:
			c.exportEntity("classes")
		}
	}
}

func (c *Console) addClass() {
	c.header("Add New Class")

	courses, err := c.Courses.List()
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, "Available courses:")
	c.renderCourses(courses)

	input := models.ClassInput{
		ClassCode:    c.promptString("Class Code"),
		CourseID:     c.promptUint("Course ID"),
		FacultyID:    c.promptUint("Faculty ID"),
		Semester:     c.promptString("Semester"),
		AcademicYear: c.promptString("Academic Year (e.g. 2025-2026)"),
		Schedule:     c.promptOptional("Schedule (e.g. MWF 10:00-11:00)"),
		Room:         c.promptString("Room"),
		MaxCapacity:  c.promptInt("Maximum Capacity"),
	}

	class, err := c.Classes.Create(input)
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintf(c.out, "\nClass %s created (id %d).\n", class.ClassCode, class.ID)
}

func (c *Console) viewAllClasses() {
	c.header("All Classes")
	page := 1
	for {
		list, info, err := c.Classes.List(pageRequest(page))
		if err != nil {
			c.printErr(err)
			return
		}
		c.renderClassRows(list)
		c.renderPageInfo(info)
		if !c.nextPage(&page, info) {
			return
		}
	}
}

func (c *Console) searchClasses() {
	c.header("Search Classes")
	term := c.promptString("Search term")

	list, err := c.Classes.Search(term)
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintf(c.out, "\nFound %d class(es):\n", len(list))
	c.renderClassRows(list)
}

func (c *Console) updateClass() {
	c.header("Update Class")
	id := c.promptUint("Class ID")

	fmt.Fprintln(c.out, "Press Enter to keep a field.")
	upd := models.ClassUpdate{
		Semester:     optional(c.promptOptional("Semester")),
		AcademicYear: optional(c.promptOptional("Academic Year")),
		Schedule:     optional(c.promptOptional("Schedule")),
		Room:         optional(c.promptOptional("Room")),
	}
	if raw := c.promptOptional("Maximum Capacity"); raw != "" {
		capacity := int(parseFloatOrZero(raw))
		upd.MaxCapacity = &capacity
	}
	if raw := c.promptOptional("Faculty ID"); raw != "" {
		facultyID := uint(parseFloatOrZero(raw))
		upd.FacultyID = &facultyID
	}

	if _, err := c.Classes.Update(id, upd); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, "\nClass updated.")
}

func (c *Console) changeClassStatus() {
	c.header("Change Class Status")
	id := c.promptUint("Class ID")

	choice := c.choose("New status", []string{"active", "inactive", "completed"})
	if choice == 0 {
		return
	}
	status := []string{models.ClassActive, models.ClassInactive, models.ClassCompleted}[choice-1]

	if err := c.Classes.ChangeStatus(id, status); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintf(c.out, "\nClass status changed to %s.\n", status)
}

func (c *Console) enrollStudent() {
	c.header("Enroll Student")
	studentID := c.promptUint("Student ID")
	classID := c.promptUint("Class ID")

	if err := c.Classes.Enroll(studentID, classID); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, "\nStudent enrolled.")
}

func (c *Console) dropStudent() {
	c.header("Drop Student")
	studentID := c.promptUint("Student ID")
	classID := c.promptUint("Class ID")

	if err := c.Classes.Drop(studentID, classID); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, "\nStudent dropped.")
}

func (c *Console) viewRoster() {
	c.header("Class Roster")
	classID := c.promptUint("Class ID")

	roster, err := c.Classes.Roster(classID)
	if err != nil {
		c.printErr(err)
		return
	}
	c.renderRoster(roster)
}

func (c *Console) markAttendance() {
	c.header("Mark Attendance")
	classID := c.promptUint("Class ID")

	roster, err := c.Classes.Roster(classID)
	if err != nil {
		c.printErr(err)
		return
	}
	if len(roster) == 0 {
		fmt.Fprintln(c.out, "No students enrolled.")
		return
	}

	date := c.promptDate("Session date")
	for _, row := range roster {
		choice := c.choose(fmt.Sprintf("%s (%s)", row.Name, row.StudentNumber),
			[]string{"present", "absent", "late"})
		if choice == 0 {
			return
		}
		status := []string{models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLate}[choice-1]

		notes := ""
		if status != models.AttendancePresent {
			notes = c.promptOptional("Notes")
		}

		if err := c.Classes.RecordAttendance(classID, row.StudentID, date, status, notes); err != nil {
			c.printErr(err)
		}
	}
	fmt.Fprintln(c.out, "\nAttendance recorded.")
}

func (c *Console) deleteClass() {
	c.header("Delete Class")
	id := c.promptUint("Class ID")
	if !c.promptYesNo("Delete this class?") {
		return
	}
	if err := c.Classes.Delete(id); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, "\nClass deleted.")
}
