package models

import "gorm.io/gorm"

// Course is a catalog entry. It must exist before any class can reference it.
type Course struct {
	gorm.Model
	CourseCode    string   `json:"courseCode" gorm:"uniqueIndex;size:16;not null"`
	CourseName    string   `json:"courseName" gorm:"not null"`
	Description   string   `json:"description"`
	Credits       int      `json:"credits" gorm:"not null"`
	Department    string   `json:"department" gorm:"not null"`
	Prerequisites []string `json:"prerequisites" gorm:"serializer:json"`
}

type CourseInput struct {
	CourseCode  string `validate:"required,max=16"`
	CourseName  string `validate:"required"`
	Description string
	Credits     int    `validate:"required,min=1,max=12"`
	Department  string `validate:"required"`
	Prerequisites []string
}
