package console

import (
	"fmt"

	"faculty-crm/internal/seed"
	"faculty-crm/models"
)

// facultyHomeMenu is what a faculty-role login sees: their own classes,
// rosters and attendance marking.
func (c *Console) facultyHomeMenu() {
	profile, err := c.Faculty.ByUserID(c.Auth.Current().UserID)
	if err != nil {
		c.printErr(err)
		return
	}
	c.header(fmt.Sprintf("Faculty Dashboard - %s", profile.FullName()))

	for {
		choice := c.choose("Faculty Menu", []string{
			"My Classes",
			"Class Roster",
			"Mark Attendance",
			"Class Attendance Log",
			"Change Password",
		})
		switch choice {
		case 0:
			return
		case 1:
			classes, err := c.Faculty.Classes(profile.ID)
			if err != nil {
				c.printErr(err)
				continue
			}
			c.renderClassRows(classes)
		case 2:
			c.viewRoster()
		case 3:
			c.markAttendance()
		case 4:
			classID := c.promptUint("Class ID")
			rows, err := c.Classes.ClassAttendance(classID)
			if err != nil {
				c.printErr(err)
				continue
			}
			c.renderAttendance(rows)
		case 5:
			c.changePassword()
		}
	}
}

// studentHomeMenu is what a student-role login sees: their own schedule and
// attendance.
func (c *Console) studentHomeMenu() {
	profile, err := c.Students.ByUserID(c.Auth.Current().UserID)
	if err != nil {
		c.printErr(err)
		return
	}
	c.header(fmt.Sprintf("Student Dashboard - %s (%s)", profile.FullName(), profile.StudentNumber))

	for {
		choice := c.choose("Student Menu", []string{
			"My Classes",
			"My Attendance",
			"Attendance Summary for a Class",
			"Change Password",
		})
		switch choice {
		case 0:
			return
		case 1:
			rows, err := c.Students.Enrollments(profile.ID)
			if err != nil {
				c.printErr(err)
				continue
			}
			c.renderStudentClasses(rows)
		case 2:
			rows, err := c.Students.Attendance(profile.ID, 0)
			if err != nil {
				c.printErr(err)
				continue
			}
			c.renderAttendance(rows)
		case 3:
			classID := c.promptUint("Class ID")
			summary, err := c.Students.AttendanceSummary(profile.ID, classID)
			if err != nil {
				c.printErr(err)
				continue
			}
			fmt.Fprintf(c.out, "\nSessions: %d  Present: %d  Late: %d  Absent: %d  Rate: %.1f%%\n",
				summary.Sessions, summary.Present, summary.Late, summary.Absent, summary.Rate)
		case 4:
			c.changePassword()
		}
	}
}

func (c *Console) settingsMenu() {
	for {
		choice := c.choose("System Settings", []string{
			"Change Password",
			"Create Admin Account",
			"Load Demo Data",
		})
		switch choice {
		case 0:
			return
		case 1:
			c.changePassword()
		case 2:
			c.createAdminAccount()
		case 3:
			if !c.promptYesNo("Load the demo data set into this database?") {
				continue
			}
			if err := seed.LoadDemoData(c.Auth.DB); err != nil {
				c.printErr(err)
				continue
			}
			fmt.Fprintln(c.out, "\nDemo data loaded.")
		}
	}
}

func (c *Console) createAdminAccount() {
	c.header("Create Admin Account")
	input := models.CreateUserInput{
		Username: c.promptString("Username"),
		Email:    c.promptString("Email"),
		Password: c.promptString("Password"),
		Role:     models.RoleAdmin,
	}

	user, err := c.Auth.CreateUser(nil, input)
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintf(c.out, "\nAdmin account %s created (id %d).\n", user.Username, user.ID)
}

func (c *Console) changePassword() {
	c.header("Change Password")
	oldPassword := c.promptString("Current password")
	newPassword := c.promptString("New password")

	if err := c.Auth.ChangePassword(oldPassword, newPassword); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, "\nPassword changed.")
}
