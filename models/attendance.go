package models

import (
	"time"

	"gorm.io/gorm"
)

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
)

// Attendance is one record per class session per student. Re-recording the
// same (class, student, date) updates the existing row.
type Attendance struct {
	gorm.Model
	ClassID   uint      `json:"classId" gorm:"not null;uniqueIndex:idx_attendance_session"`
	StudentID uint      `json:"studentId" gorm:"not null;uniqueIndex:idx_attendance_session"`
	Date      time.Time `json:"date" gorm:"not null;uniqueIndex:idx_attendance_session"`
	Status    string    `json:"status" gorm:"size:16;not null"`
	Notes     string    `json:"notes"`

	Class   *Class   `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

// AttendanceRow is a joined attendance line for on-screen display.
type AttendanceRow struct {
	Date          time.Time `json:"date"`
	ClassCode     string    `json:"classCode"`
	StudentNumber string    `json:"studentNumber"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
}

// AttendanceSummary is the per-student attendance rate in one class.
type AttendanceSummary struct {
	Sessions int     `json:"sessions"`
	Present  int     `json:"present"`
	Late     int     `json:"late"`
	Absent   int     `json:"absent"`
	Rate     float64 `json:"rate"` // present+late over sessions, percent
}
