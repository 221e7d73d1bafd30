// Package console is the menu-driven front-end. It collects input,
// dispatches to the managers and renders results as tables; every manager
// error is shown as a one-line message.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"gorm.io/gorm"

	"faculty-crm/internal/managers"
	"faculty-crm/internal/reports"
	"faculty-crm/models"
)

type Console struct {
	in  *bufio.Reader
	out io.Writer

	Auth     *managers.AuthManager
	Faculty  *managers.FacultyManager
	Courses  *managers.CourseManager
	Classes  *managers.ClassManager
	Students *managers.StudentManager
	Reports  *reports.Generator

	ExportDir string
}

func New(db *gorm.DB, exportDir string) *Console {
	auth := managers.NewAuthManager(db)
	return &Console{
		in:        bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		Auth:      auth,
		Faculty:   managers.NewFacultyManager(db, auth),
		Courses:   managers.NewCourseManager(db, auth),
		Classes:   managers.NewClassManager(db, auth),
		Students:  managers.NewStudentManager(db, auth),
		Reports:   reports.NewGenerator(db, auth),
		ExportDir: exportDir,
	}
}

// Run drives the login loop and the role-specific main menu until the user
// exits.
func (c *Console) Run() {
	c.header("Faculty & Class Management System")

	for {
		if !c.login() {
			fmt.Fprintln(c.out, "Goodbye.")
			return
		}

		session := c.Auth.Current()
		switch session.Role {
		case models.RoleAdmin:
			c.adminMenu()
		case models.RoleFaculty:
			c.facultyHomeMenu()
		case models.RoleStudent:
			c.studentHomeMenu()
		}
		c.Auth.Logout()
		fmt.Fprintln(c.out, "Logged out.")
	}
}

func (c *Console) login() bool {
	for {
		username := c.promptString("Username")
		password := c.promptString("Password")

		session, err := c.Auth.Login(username, password)
		if err != nil {
			c.printErr(err)
			if !c.promptYesNo("Try again?") {
				return false
			}
			continue
		}

		fmt.Fprintf(c.out, "\nWelcome, %s (%s)!\n", session.Username, session.Role)
		return true
	}
}

func (c *Console) adminMenu() {
	for {
		choice := c.choose("Admin Menu", []string{
			"Faculty Management",
			"Course Catalog",
			"Class Management",
			"Student Management",
			"Reports & Analytics",
			"System Settings",
		})
		switch choice {
		case 0:
			return
		case 1:
			c.facultyMenu()
		case 2:
			c.courseMenu()
		case 3:
			c.classMenu()
		case 4:
			c.studentMenu()
		case 5:
			c.reportsMenu()
		case 6:
			c.settingsMenu()
		}
	}
}

func (c *Console) printErr(err error) {
	fmt.Fprintf(c.out, "\nError: %v\n", err)
}

func (c *Console) header(title string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "============================================================")
	fmt.Fprintf(c.out, "  %s\n", title)
	fmt.Fprintln(c.out, "============================================================")
}
