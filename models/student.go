package models

import (
	"time"

	"gorm.io/gorm"
)

// Student is an enrolled-student profile linked to a user account.
type Student struct {
	gorm.Model
	UserID         uint      `json:"userId" gorm:"not null"`
	FirstName      string    `json:"firstName" gorm:"not null"`
	LastName       string    `json:"lastName" gorm:"not null"`
	StudentNumber  string    `json:"studentNumber" gorm:"uniqueIndex;size:32;not null;column:student_number"`
	Major          string    `json:"major" gorm:"not null"`
	YearLevel      int       `json:"yearLevel" gorm:"not null"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	IsActive       bool      `json:"isActive" gorm:"default:true"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

type StudentInput struct {
	Username      string `validate:"required,min=3,max=64"`
	Email         string `validate:"required,email"`
	Password      string `validate:"required,min=6"`
	FirstName     string `validate:"required"`
	LastName      string `validate:"required"`
	StudentNumber string `validate:"required"`
	Major         string `validate:"required"`
	YearLevel     int    `validate:"required,min=1,max=8"`
	Phone         string `validate:"omitempty,min=10"`
	EnrollmentDate time.Time
}

// StudentUpdate holds optional fields for a partial update.
type StudentUpdate struct {
	FirstName *string
	LastName  *string
	Major     *string
	YearLevel *int
	Phone     *string
	Email     *string
}
