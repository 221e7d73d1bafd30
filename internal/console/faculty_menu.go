package console

import (
	"fmt"

	"faculty-crm/models"
)

func (c *Console) facultyMenu() {
	for {
		choice := c.choose("Faculty Management", []string{
			"Add New Faculty",
			"View All Faculty",
			"Search Faculty",
			"Update Faculty Information",
			"Deactivate Faculty",
			"Faculty Workload",
			"Export Faculty Data",
		})
		switch choice {
		case 0:
			return
		case 1:
			c.addFaculty()
		case 2:
			c.viewAllFaculty()
		case 3:
			c.searchFaculty()
		case 4:
			c.updateFaculty()
		case 5:
			c.deactivateFaculty()
		case 6:
			c.facultyWorkload()
		case 7:
			c.exportEntity("faculty")
		}
	}
}

func (c *Console) addFaculty() {
	c.header("Add New Faculty Member")

	input := models.FacultyInput{
		Username:       c.promptString("Username"),
		Email:          c.promptString("Email"),
		Password:       c.promptString("Password"),
		FirstName:      c.promptString("First Name"),
		LastName:       c.promptString("Last Name"),
		EmployeeID:     c.promptString("Employee ID"),
		Department:     c.promptString("Department"),
		Specialization: c.promptString("Specialization"),
		Phone:          c.promptOptional("Phone"),
		OfficeLocation: c.promptOptional("Office Location"),
		HireDate:       c.promptDate("Hire Date"),
		Salary:         c.promptFloat("Salary"),
	}

	faculty, err := c.Faculty.Create(input)
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintf(c.out, "\nFaculty member %s added (id %d).\n", faculty.FullName(), faculty.ID)
}

func (c *Console) viewAllFaculty() {
	c.header("All Faculty")
	page := 1
	for {
		list, info, err := c.Faculty.List(pageRequest(page))
		if err != nil {
			c.printErr(err)
			return
		}
		c.renderFaculty(list)
		c.renderPageInfo(info)
		if !c.nextPage(&page, info) {
			return
		}
	}
}

func (c *Console) searchFaculty() {
	c.header("Search Faculty")
	term := c.promptString("Search term")

	list, err := c.Faculty.Search(term)
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintf(c.out, "\nFound %d faculty member(s):\n", len(list))
	c.renderFaculty(list)
}

func (c *Console) updateFaculty() {
	c.header("Update Faculty Information")
	id := c.promptUint("Faculty ID")

	current, err := c.Faculty.Get(id)
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintf(c.out, "Updating %s. Press Enter to keep a field.\n", current.FullName())

	upd := models.FacultyUpdate{
		FirstName:      optional(c.promptOptional("First Name")),
		LastName:       optional(c.promptOptional("Last Name")),
		Department:     optional(c.promptOptional("Department")),
		Specialization: optional(c.promptOptional("Specialization")),
		Phone:          optional(c.promptOptional("Phone")),
		OfficeLocation: optional(c.promptOptional("Office Location")),
	}
	if raw := c.promptOptional("Salary"); raw != "" {
		salary := parseFloatOrZero(raw)
		upd.Salary = &salary
	}

	if _, err := c.Faculty.Update(id, upd); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, "\nFaculty information updated.")
}

func (c *Console) deactivateFaculty() {
	c.header("Deactivate Faculty")
	id := c.promptUint("Faculty ID")
	if !c.promptYesNo("Deactivate this faculty member?") {
		return
	}
	if err := c.Faculty.Deactivate(id); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, "\nFaculty member deactivated.")
}

func (c *Console) facultyWorkload() {
	c.header("Faculty Workload")
	id := c.promptUint("Faculty ID")

	faculty, err := c.Faculty.Get(id)
	if err != nil {
		c.printErr(err)
		return
	}
	workload, err := c.Faculty.Workload(id)
	if err != nil {
		c.printErr(err)
		return
	}

	fmt.Fprintf(c.out, "\n%s (%s, %s)\n", faculty.FullName(), faculty.EmployeeID, faculty.Department)
	fmt.Fprintf(c.out, "Active classes:   %d\n", workload.TotalClasses)
	fmt.Fprintf(c.out, "Total students:   %d\n", workload.TotalStudents)
	fmt.Fprintf(c.out, "Avg class size:   %.2f\n", workload.AvgClassSize)

	classes, err := c.Faculty.Classes(id)
	if err != nil {
		c.printErr(err)
		return
	}
	c.renderClassRows(classes)
}
