package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses.
const (
	EnrollmentEnrolled  = "enrolled"
	EnrollmentDropped   = "dropped"
	EnrollmentCompleted = "completed"
)

// Enrollment links a student to a class. The (student, class) pair is unique.
type Enrollment struct {
	gorm.Model
	StudentID      uint      `json:"studentId" gorm:"not null;uniqueIndex:idx_enrollment_pair"`
	ClassID        uint      `json:"classId" gorm:"not null;uniqueIndex:idx_enrollment_pair"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	Grade          string    `json:"grade" gorm:"size:4"`
	Status         string    `json:"status" gorm:"size:16;default:enrolled"`

	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Class   *Class   `json:"class,omitempty" gorm:"foreignKey:ClassID"`
}

// RosterRow is one line of a class roster as displayed and exported.
type RosterRow struct {
	EnrollmentID  uint      `json:"enrollmentId"`
	StudentID     uint      `json:"studentId"`
	StudentNumber string    `json:"studentNumber"`
	Name          string    `json:"name"`
	Major         string    `json:"major"`
	YearLevel     int       `json:"yearLevel"`
	EnrolledAt    time.Time `json:"enrolledAt"`
	Grade         string    `json:"grade"`
	Status        string    `json:"status"`
}

// StudentClassRow is one line of a student's schedule: the classes they are
// enrolled in, joined with course and faculty names.
type StudentClassRow struct {
	EnrollmentID uint   `json:"enrollmentId"`
	ClassCode    string `json:"classCode"`
	CourseName   string `json:"courseName"`
	FacultyName  string `json:"facultyName"`
	Semester     string `json:"semester"`
	AcademicYear string `json:"academicYear"`
	Schedule     string `json:"schedule"`
	Room         string `json:"room"`
	Grade        string `json:"grade"`
	Status       string `json:"status"`
}
