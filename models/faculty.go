package models

import (
	"time"

	"gorm.io/gorm"
)

// Faculty is a teaching staff profile linked to a user account.
type Faculty struct {
	gorm.Model
	UserID         uint      `json:"userId" gorm:"not null"`
	FirstName      string    `json:"firstName" gorm:"not null"`
	LastName       string    `json:"lastName" gorm:"not null"`
	EmployeeID     string    `json:"employeeId" gorm:"uniqueIndex;size:32;not null"`
	Department     string    `json:"department" gorm:"not null"`
	Specialization string    `json:"specialization" gorm:"not null"`
	Phone          string    `json:"phone"`
	OfficeLocation string    `json:"officeLocation"`
	HireDate       time.Time `json:"hireDate"`
	Salary         float64   `json:"salary"`
	IsActive       bool      `json:"isActive" gorm:"default:true"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// FullName is the display form used in listings and reports.
func (f *Faculty) FullName() string {
	return f.FirstName + " " + f.LastName
}

// FacultyInput is validated before a faculty member (and their account)
// is created.
type FacultyInput struct {
	Username       string  `validate:"required,min=3,max=64"`
	Email          string  `validate:"required,email"`
	Password       string  `validate:"required,min=6"`
	FirstName      string  `validate:"required"`
	LastName       string  `validate:"required"`
	EmployeeID     string  `validate:"required"`
	Department     string  `validate:"required"`
	Specialization string  `validate:"required"`
	Phone          string  `validate:"omitempty,min=10"`
	OfficeLocation string
	HireDate       time.Time
	Salary         float64 `validate:"gte=0"`
}

// FacultyUpdate holds optional fields for a partial update. Nil means
// "leave unchanged".
type FacultyUpdate struct {
	FirstName      *string
	LastName       *string
	Department     *string
	Specialization *string
	Phone          *string
	OfficeLocation *string
	Salary         *float64
}

// FacultyWorkload aggregates a faculty member's active teaching load.
type FacultyWorkload struct {
	TotalClasses  int     `json:"totalClasses"`
	TotalStudents int     `json:"totalStudents"`
	AvgClassSize  float64 `json:"avgClassSize"`
}
