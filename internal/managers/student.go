package managers

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"faculty-crm/internal/apperr"
	"faculty-crm/models"
)

// StudentManager owns student CRUD, searches and the student-facing
// enrollment/attendance views.
type StudentManager struct {
	DB   *gorm.DB
	Auth *AuthManager
}

func NewStudentManager(db *gorm.DB, auth *AuthManager) *StudentManager {
	return &StudentManager{DB: db, Auth: auth}
}

// Create opens a student user account and its profile in one transaction.
func (m *StudentManager) Create(input models.StudentInput) (*models.Student, error) {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var student models.Student
	err := m.DB.Transaction(func(tx *gorm.DB) error {
		user, err := m.Auth.CreateUser(tx, models.CreateUserInput{
			Username: input.Username,
			Email:    input.Email,
			Password: input.Password,
			Role:     models.RoleStudent,
		})
		if err != nil {
			return err
		}

		enrollmentDate := input.EnrollmentDate
		if enrollmentDate.IsZero() {
			enrollmentDate = time.Now()
		}

		student = models.Student{
			UserID:         user.ID,
			FirstName:      input.FirstName,
			LastName:       input.LastName,
			StudentNumber:  input.StudentNumber,
			Major:          input.Major,
			YearLevel:      input.YearLevel,
			Phone:          input.Phone,
			Email:          input.Email,
			EnrollmentDate: enrollmentDate,
			IsActive:       true,
		}
		if err := tx.Create(&student).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Duplicatef("student number %s already exists", input.StudentNumber)
			}
			return apperr.Storage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("student created", "id", student.ID, "studentNumber", student.StudentNumber)
	return &student, nil
}

func (m *StudentManager) Get(id uint) (*models.Student, error) {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	return m.get(id)
}

func (m *StudentManager) get(id uint) (*models.Student, error) {
	var student models.Student
	err := m.DB.Where("is_active = ?", true).First(&student, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("student %d", id)
		}
		return nil, apperr.Storage(err)
	}
	return &student, nil
}

// ByUserID resolves the student profile behind a logged-in account.
func (m *StudentManager) ByUserID(userID uint) (*models.Student, error) {
	var student models.Student
	err := m.DB.Where("user_id = ? AND is_active = ?", userID, true).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("student profile for user %d", userID)
		}
		return nil, apperr.Storage(err)
	}
	return &student, nil
}

// List returns one page of active students ordered by last name.
func (m *StudentManager) List(req PageRequest) ([]models.Student, PageInfo, error) {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return nil, PageInfo{}, err
	}

	base := m.DB.Model(&models.Student{}).Where("is_active = ?", true)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, PageInfo{}, apperr.Storage(err)
	}

	var list []models.Student
	err := base.Scopes(Paginate(req)).
		Order("last_name, first_name").
		Find(&list).Error
	if err != nil {
		return nil, PageInfo{}, apperr.Storage(err)
	}
	return list, NewPageInfo(req, total), nil
}

// Search matches name, student number, major or email, case-insensitively.
func (m *StudentManager) Search(term string) ([]models.Student, error) {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}

	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	var list []models.Student
	err := m.DB.Where("is_active = ?", true).
		Where(`LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(student_number) LIKE ?
			OR LOWER(major) LIKE ? OR LOWER(email) LIKE ?`,
			pattern, pattern, pattern, pattern, pattern).
		Order("last_name, first_name").
		Find(&list).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return list, nil
}

func (m *StudentManager) ByMajor(major string) ([]models.Student, error) {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	var list []models.Student
	err := m.DB.Where("is_active = ? AND LOWER(major) = ?", true, strings.ToLower(major)).
		Order("last_name, first_name").
		Find(&list).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return list, nil
}

func (m *StudentManager) ByYearLevel(year int) ([]models.Student, error) {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	var list []models.Student
	err := m.DB.Where("is_active = ? AND year_level = ?", true, year).
		Order("last_name, first_name").
		Find(&list).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return list, nil
}

// Update applies the non-nil fields of upd to the student row.
func (m *StudentManager) Update(id uint, upd models.StudentUpdate) (*models.Student, error) {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if upd.FirstName != nil {
		changes["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		changes["last_name"] = *upd.LastName
	}
	if upd.Major != nil {
		changes["major"] = *upd.Major
	}
	if upd.YearLevel != nil {
		if *upd.YearLevel < 1 || *upd.YearLevel > 8 {
			return nil, apperr.Validationf("year level must be between 1 and 8")
		}
		changes["year_level"] = *upd.YearLevel
	}
	if upd.Phone != nil {
		changes["phone"] = *upd.Phone
	}
	if upd.Email != nil {
		changes["email"] = *upd.Email
	}
	if len(changes) == 0 {
		return nil, apperr.Validationf("no fields to update")
	}

	res := m.DB.Model(&models.Student{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(changes)
	if res.Error != nil {
		return nil, apperr.Storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFoundf("student %d", id)
	}
	return m.get(id)
}

// Deactivate soft-disables the student and their login. Enrollment history
// is kept.
func (m *StudentManager) Deactivate(id uint) error {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return err
	}

	student, err := m.get(id)
	if err != nil {
		return err
	}

	return m.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(student).Update("is_active", false).Error; err != nil {
			return apperr.Storage(err)
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", student.UserID).
			Update("is_active", false).Error; err != nil {
			return apperr.Storage(err)
		}
		slog.Info("student deactivated", "id", id)
		return nil
	})
}

// Enrollments lists the classes a student is enrolled in, joined with
// course and faculty names. Students may view their own schedule; admins
// and faculty may view anyone's.
func (m *StudentManager) Enrollments(studentID uint) ([]models.StudentClassRow, error) {
	if err := m.Auth.RequireAny(models.RoleAdmin, models.RoleFaculty, models.RoleStudent); err != nil {
		return nil, err
	}
	if m.Auth.Current().Role == models.RoleStudent {
		own, err := m.ByUserID(m.Auth.Current().UserID)
		if err != nil || own.ID != studentID {
			return nil, apperr.ErrPermissionDenied
		}
	}

	var rows []models.StudentClassRow
	err := m.DB.Table("enrollments").
		Select(`enrollments.id AS enrollment_id, classes.class_code, courses.course_name,
			faculties.first_name || ' ' || faculties.last_name AS faculty_name,
			classes.semester, classes.academic_year, classes.schedule, classes.room,
			enrollments.grade, enrollments.status`).
		Joins("JOIN classes ON classes.id = enrollments.class_id").
		Joins("JOIN courses ON courses.id = classes.course_id").
		Joins("JOIN faculties ON faculties.id = classes.faculty_id").
		Where("enrollments.student_id = ? AND enrollments.deleted_at IS NULL", studentID).
		Order("classes.academic_year DESC, classes.semester").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return rows, nil
}

// Attendance lists a student's attendance records, optionally limited to
// one class. Same visibility rules as Enrollments.
func (m *StudentManager) Attendance(studentID uint, classID uint) ([]models.AttendanceRow, error) {
	if err := m.Auth.RequireAny(models.RoleAdmin, models.RoleFaculty, models.RoleStudent); err != nil {
		return nil, err
	}
	if m.Auth.Current().Role == models.RoleStudent {
		own, err := m.ByUserID(m.Auth.Current().UserID)
		if err != nil || own.ID != studentID {
			return nil, apperr.ErrPermissionDenied
		}
	}

	query := m.DB.Table("attendances").
		Select(`attendances.date, classes.class_code, students.student_number,
			students.first_name || ' ' || students.last_name AS name,
			attendances.status, attendances.notes`).
		Joins("JOIN classes ON classes.id = attendances.class_id").
		Joins("JOIN students ON students.id = attendances.student_id").
		Where("attendances.student_id = ? AND attendances.deleted_at IS NULL", studentID)
	if classID != 0 {
		query = query.Where("attendances.class_id = ?", classID)
	}

	var rows []models.AttendanceRow
	if err := query.Order("attendances.date DESC").Scan(&rows).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return rows, nil
}

// AttendanceSummary computes the attendance rate of one student in one
// class. Present and late sessions both count as attended.
func (m *StudentManager) AttendanceSummary(studentID, classID uint) (*models.AttendanceSummary, error) {
	rows, err := m.Attendance(studentID, classID)
	if err != nil {
		return nil, err
	}

	summary := models.AttendanceSummary{Sessions: len(rows)}
	for _, row := range rows {
		switch row.Status {
		case models.AttendancePresent:
			summary.Present++
		case models.AttendanceLate:
			summary.Late++
		case models.AttendanceAbsent:
			summary.Absent++
		}
	}
	if summary.Sessions > 0 {
		summary.Rate = float64(summary.Present+summary.Late) / float64(summary.Sessions) * 100
	}
	return &summary, nil
}
