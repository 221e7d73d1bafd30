package models

import "gorm.io/gorm"

// Class statuses.
const (
	ClassActive    = "active"
	ClassInactive  = "inactive"
	ClassCompleted = "completed"
)

// Class is a scheduled offering of a course, taught by one faculty member.
// CurrentEnrollment is maintained transactionally and never exceeds
// MaxCapacity.
type Class struct {
	gorm.Model
	ClassCode         string `json:"classCode" gorm:"uniqueIndex;size:32;not null"`
	CourseID          uint   `json:"courseId" gorm:"not null"`
	FacultyID         uint   `json:"facultyId" gorm:"not null"`
	Semester          string `json:"semester" gorm:"not null"`
	AcademicYear      string `json:"academicYear" gorm:"not null"`
	Schedule          string `json:"schedule"` // e.g. "MWF 10:00-11:00"
	Room              string `json:"room" gorm:"not null"`
	MaxCapacity       int    `json:"maxCapacity" gorm:"not null"`
	CurrentEnrollment int    `json:"currentEnrollment" gorm:"default:0"`
	Status            string `json:"status" gorm:"size:16;default:active"`

	Course  *Course  `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Faculty *Faculty `json:"faculty,omitempty" gorm:"foreignKey:FacultyID"`
}

type ClassInput struct {
	ClassCode    string `validate:"required,max=32"`
	CourseID     uint   `validate:"required"`
	FacultyID    uint   `validate:"required"`
	Semester     string `validate:"required"`
	AcademicYear string `validate:"required"`
	Schedule     string
	Room         string `validate:"required"`
	MaxCapacity  int    `validate:"required,min=1"`
}

// ClassUpdate holds optional fields for a partial update.
type ClassUpdate struct {
	CourseID     *uint
	FacultyID    *uint
	Semester     *string
	AcademicYear *string
	Schedule     *string
	Room         *string
	MaxCapacity  *int
}

// ClassRow is the joined listing row shown on screen and exported.
type ClassRow struct {
	ID                uint   `json:"id"`
	ClassCode         string `json:"classCode"`
	CourseName        string `json:"courseName"`
	FacultyName       string `json:"facultyName"`
	Semester          string `json:"semester"`
	AcademicYear      string `json:"academicYear"`
	Schedule          string `json:"schedule"`
	Room              string `json:"room"`
	CurrentEnrollment int    `json:"currentEnrollment"`
	MaxCapacity       int    `json:"maxCapacity"`
	Status            string `json:"status"`
}
