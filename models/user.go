package models

import "gorm.io/gorm"

// Roles known to the system. Admin passes every permission check.
const (
	RoleAdmin   = "admin"
	RoleFaculty = "faculty"
	RoleStudent = "student"
)

// User is the login account behind every faculty member, student and admin.
// Accounts are deactivated, never hard-deleted.
type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"uniqueIndex;size:64;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Role         string `json:"role" gorm:"size:16;not null"`
	IsActive     bool   `json:"isActive" gorm:"default:true"`
}

// CreateUserInput carries the fields needed to open a new account.
type CreateUserInput struct {
	Username string `validate:"required,min=3,max=64"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Role     string `validate:"required,oneof=admin faculty student"`
}
