package console

import (
	"fmt"

	"faculty-crm/models"
)

func (c *Console) studentMenu() {
	for {
		choice := c.choose("Student Management", []string{
			"Add New Student",
			"View All Students",
			"Search Students",
			"Students by Major",
			"Update Student Information",
			"Deactivate Student",
			"View Student Schedule",
			"View Student Attendance",
			"Export Student Data",
		})
		switch choice {
		case 0:
			return
		case 1:
			c.addStudent()
		case 2:
			c.viewAllStudents()
		case 3:
			c.searchStudents()
		case 4:
			c.studentsByMajor()
		case 5:
			c.updateStudent()
		case 6:
			c.deactivateStudent()
		case 7:
			c.viewStudentSchedule()
		case 8:
			c.viewStudentAttendance()
		case 9:
			c.exportEntity("students")
		}
	}
}

func (c *Console) addStudent() {
	c.header("Add New Student")

	input := models.StudentInput{
		Username:       c.promptString("Username"),
		Email:          c.promptString("Email"),
		Password:       c.promptString("Password"),
		FirstName:      c.promptString("First Name"),
		LastName:       c.promptString("Last Name"),
		StudentNumber:  c.promptString("Student ID"),
		Major:          c.promptString("Major"),
		YearLevel:      c.promptInt("Year Level (1-8)"),
		Phone:          c.promptOptional("Phone"),
		EnrollmentDate: c.promptDate("Enrollment Date"),
	}

	student, err := c.Students.Create(input)
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintf(c.out, "\nStudent %s added (id %d).\n", student.FullName(), student.ID)
}

func (c *Console) viewAllStudents() {
	c.header("All Students")
	page := 1
	for {
		list, info, err := c.Students.List(pageRequest(page))
		if err != nil {
			c.printErr(err)
			return
		}
		c.renderStudents(list)
		c.renderPageInfo(info)
		if !c.nextPage(&page, info) {
			return
		}
	}
}

func (c *Console) searchStudents() {
	c.header("Search Students")
	term := c.promptString("Search term")

	list, err := c.Students.Search(term)
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintf(c.out, "\nFound %d student(s):\n", len(list))
	c.renderStudents(list)
}

func (c *Console) studentsByMajor() {
	c.header("Students by Major")
	major := c.promptString("Major")

	list, err := c.Students.ByMajor(major)
	if err != nil {
		c.printErr(err)
		return
	}
	c.renderStudents(list)
}

func (c *Console) updateStudent() {
	c.header("Update Student Information")
	id := c.promptUint("Student ID (internal)")

	current, err := c.Students.Get(id)
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintf(c.out, "Updating %s. Press Enter to keep a field.\n", current.FullName())

	upd := models.StudentUpdate{
		FirstName: optional(c.promptOptional("First Name")),
		LastName:  optional(c.promptOptional("Last Name")),
		Major:     optional(c.promptOptional("Major")),
		Phone:     optional(c.promptOptional("Phone")),
		Email:     optional(c.promptOptional("Email")),
	}
	if raw := c.promptOptional("Year Level"); raw != "" {
		year := int(parseFloatOrZero(raw))
		upd.YearLevel = &year
	}

	if _, err := c.Students.Update(id, upd); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, "\nStudent information updated.")
}

func (c *Console) deactivateStudent() {
	c.header("Deactivate Student")
	id := c.promptUint("Student ID (internal)")
	if !c.promptYesNo("Deactivate this student?") {
		return
	}
	if err := c.Students.Deactivate(id); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, "\nStudent deactivated.")
}

func (c *Console) viewStudentSchedule() {
	c.header("Student Schedule")
	id := c.promptUint("Student ID (internal)")

	rows, err := c.Students.Enrollments(id)
	if err != nil {
		c.printErr(err)
		return
	}
	c.renderStudentClasses(rows)
}

func (c *Console) viewStudentAttendance() {
	c.header("Student Attendance")
	id := c.promptUint("Student ID (internal)")

	rows, err := c.Students.Attendance(id, 0)
	if err != nil {
		c.printErr(err)
		return
	}
	c.renderAttendance(rows)
}
