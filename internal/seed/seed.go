// Package seed creates the default admin account and an optional demo data
// set for trying the system out.
package seed

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"faculty-crm/models"
)

// Default admin credentials created on first run.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
	DefaultAdminEmail    = "admin@system.com"
)

// EnsureDefaultAdmin creates the admin/admin123 account when no admin user
// exists yet, so a fresh database is immediately usable.
func EnsureDefaultAdmin(db *gorm.DB) error {
	var user models.User
	err := db.Where("username = ?", DefaultAdminUsername).First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     DefaultAdminUsername,
		Email:        DefaultAdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	slog.Info("default admin created", "username", DefaultAdminUsername)
	return nil
}

type demoCourse struct {
	code, name, description, department string
	credits                             int
	prerequisites                       []string
}

type demoFaculty struct {
	username, first, last, employeeID, department, specialization, phone, office string
	yearsAgo                                                                     int
	salary                                                                       float64
}

type demoStudent struct {
	username, first, last, number, major string
	year                                 int
}

// LoadDemoData populates an empty database with a small sample institution.
// It refuses to run when courses already exist.
func LoadDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("demo data skipped: database already has %d courses", count)
	}

	courses := []demoCourse{
		{"CS101", "Introduction to Computer Science", "Basic programming concepts", "Computer Science", 3, nil},
		{"CS201", "Data Structures", "Advanced programming and data structures", "Computer Science", 3, []string{"CS101"}},
		{"CS301", "Algorithms", "Algorithm design and analysis", "Computer Science", 3, []string{"CS201"}},
		{"MATH101", "Calculus I", "Differential calculus", "Mathematics", 4, nil},
		{"MATH201", "Calculus II", "Integral calculus", "Mathematics", 4, []string{"MATH101"}},
		{"PHYS101", "Physics I", "Mechanics and thermodynamics", "Physics", 4, nil},
		{"ENG101", "English Composition", "Writing and communication skills", "English", 3, nil},
		{"HIST101", "World History", "Survey of world history", "History", 3, nil},
		{"CHEM101", "General Chemistry", "Basic chemistry principles", "Chemistry", 4, nil},
	}

	faculty := []demoFaculty{
		{"john_doe", "John", "Doe", "F001", "Computer Science", "Software Engineering", "555-0101", "CS Building 101", 5, 75000},
		{"jane_smith", "Jane", "Smith", "F002", "Mathematics", "Applied Mathematics", "555-0102", "Math Building 201", 3, 70000},
		{"bob_wilson", "Bob", "Wilson", "F003", "Physics", "Quantum Physics", "555-0103", "Physics Building 301", 7, 80000},
		{"alice_brown", "Alice", "Brown", "F004", "English", "Literature", "555-0104", "English Building 401", 4, 65000},
		{"charlie_davis", "Charlie", "Davis", "F005", "History", "American History", "555-0105", "History Building 501", 6, 68000},
		{"diana_garcia", "Diana", "Garcia", "F006", "Chemistry", "Organic Chemistry", "555-0106", "Chemistry Building 601", 2, 72000},
	}

	students := []demoStudent{
		{"mike_jones", "Mike", "Jones", "S001", "Computer Science", 2},
		{"sarah_lee", "Sarah", "Lee", "S002", "Computer Science", 3},
		{"tom_clark", "Tom", "Clark", "S003", "Mathematics", 1},
		{"emma_white", "Emma", "White", "S004", "Physics", 2},
		{"liam_hall", "Liam", "Hall", "S005", "English", 4},
		{"olivia_young", "Olivia", "Young", "S006", "Chemistry", 1},
		{"noah_king", "Noah", "King", "S007", "History", 3},
		{"ava_wright", "Ava", "Wright", "S008", "Computer Science", 1},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		courseIDs := map[string]uint{}
		for _, c := range courses {
			course := models.Course{
				CourseCode:    c.code,
				CourseName:    c.name,
				Description:   c.description,
				Credits:       c.credits,
				Department:    c.department,
				Prerequisites: c.prerequisites,
			}
			if err := tx.Create(&course).Error; err != nil {
				return err
			}
			courseIDs[c.code] = course.ID
		}

		facultyIDs := make([]uint, 0, len(faculty))
		for _, f := range faculty {
			user := models.User{
				Username:     f.username,
				Email:        f.username + "@university.edu",
				PasswordHash: string(hash),
				Role:         models.RoleFaculty,
				IsActive:     true,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			member := models.Faculty{
				UserID:         user.ID,
				FirstName:      f.first,
				LastName:       f.last,
				EmployeeID:     f.employeeID,
				Department:     f.department,
				Specialization: f.specialization,
				Phone:          f.phone,
				OfficeLocation: f.office,
				HireDate:       time.Now().AddDate(-f.yearsAgo, 0, 0),
				Salary:         f.salary,
				IsActive:       true,
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
			facultyIDs = append(facultyIDs, member.ID)
		}

		studentIDs := make([]uint, 0, len(students))
		for _, s := range students {
			user := models.User{
				Username:     s.username,
				Email:        s.username + "@student.university.edu",
				PasswordHash: string(hash),
				Role:         models.RoleStudent,
				IsActive:     true,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			student := models.Student{
				UserID:         user.ID,
				FirstName:      s.first,
				LastName:       s.last,
				StudentNumber:  s.number,
				Major:          s.major,
				YearLevel:      s.year,
				Phone:          "555-1000",
				Email:          user.Email,
				EnrollmentDate: time.Now().AddDate(-s.year, 0, 0),
				IsActive:       true,
			}
			if err := tx.Create(&student).Error; err != nil {
				return err
			}
			studentIDs = append(studentIDs, student.ID)
		}

		classes := []models.Class{
			{ClassCode: "CS101-A", CourseID: courseIDs["CS101"], FacultyID: facultyIDs[0],
				Semester: "Fall", AcademicYear: "2025-2026", Schedule: "MWF 10:00-11:00",
				Room: "Room 101", MaxCapacity: 30, Status: models.ClassActive},
			{ClassCode: "CS201-A", CourseID: courseIDs["CS201"], FacultyID: facultyIDs[0],
				Semester: "Fall", AcademicYear: "2025-2026", Schedule: "TTh 13:00-14:30",
				Room: "Room 102", MaxCapacity: 25, Status: models.ClassActive},
			{ClassCode: "MATH101-A", CourseID: courseIDs["MATH101"], FacultyID: facultyIDs[1],
				Semester: "Fall", AcademicYear: "2025-2026", Schedule: "MWF 09:00-10:00",
				Room: "Room 201", MaxCapacity: 35, Status: models.ClassActive},
			{ClassCode: "PHYS101-A", CourseID: courseIDs["PHYS101"], FacultyID: facultyIDs[2],
				Semester: "Fall", AcademicYear: "2025-2026", Schedule: "TTh 10:00-11:30",
				Room: "Lab 1", MaxCapacity: 20, Status: models.ClassActive},
			{ClassCode: "ENG101-A", CourseID: courseIDs["ENG101"], FacultyID: facultyIDs[3],
				Semester: "Spring", AcademicYear: "2024-2025", Schedule: "MWF 11:00-12:00",
				Room: "Room 301", MaxCapacity: 30, Status: models.ClassCompleted},
		}
		for i := range classes {
			if err := tx.Create(&classes[i]).Error; err != nil {
				return err
			}
		}

		// A few enrollments so the reports have something to aggregate.
		pairs := []struct{ student, class int }{
			{0, 0}, {1, 0}, {7, 0},
			{0, 1}, {1, 1},
			{2, 2}, {3, 2},
			{3, 3},
			{4, 4},
		}
		for _, p := range pairs {
			enrollment := models.Enrollment{
				StudentID:      studentIDs[p.student],
				ClassID:        classes[p.class].ID,
				EnrollmentDate: time.Now(),
				Status:         models.EnrollmentEnrolled,
			}
			if err := tx.Create(&enrollment).Error; err != nil {
				return err
			}
			err := tx.Model(&models.Class{}).
				Where("id = ?", classes[p.class].ID).
				Update("current_enrollment", gorm.Expr("current_enrollment + 1")).Error
			if err != nil {
				return err
			}
		}

		slog.Info("demo data loaded",
			"courses", len(courses), "faculty", len(faculty),
			"students", len(students), "classes", len(classes))
		return nil
	})
}
