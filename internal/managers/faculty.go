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

// FacultyManager owns faculty CRUD and searches. All mutations require the
// admin role.
type FacultyManager struct {
	DB   *gorm.DB
	Auth *AuthManager
}

func NewFacultyManager(db *gorm.DB, auth *AuthManager) *FacultyManager {
	return &FacultyManager{DB: db, Auth: auth}
}

// Create opens a faculty user account and its profile in one transaction.
func (m *FacultyManager) Create(input models.FacultyInput) (*models.Faculty, error) {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var faculty models.Faculty
	err := m.DB.Transaction(func(tx *gorm.DB) error {
		user, err := m.Auth.CreateUser(tx, models.CreateUserInput{
			Username: input.Username,
			Email:    input.Email,
			Password: input.Password,
			Role:     models.RoleFaculty,
		})
		if err != nil {
			return err
		}

		hireDate := input.HireDate
		if hireDate.IsZero() {
			hireDate = time.Now()
		}

		faculty = models.Faculty{
			UserID:         user.ID,
			FirstName:      input.FirstName,
			LastName:       input.LastName,
			EmployeeID:     input.EmployeeID,
			Department:     input.Department,
			Specialization: input.Specialization,
			Phone:          input.Phone,
			OfficeLocation: input.OfficeLocation,
			HireDate:       hireDate,
			Salary:         input.Salary,
			IsActive:       true,
		}
		if err := tx.Create(&faculty).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Duplicatef("employee id %s already exists", input.EmployeeID)
			}
			return apperr.Storage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("faculty created", "id", faculty.ID, "employeeId", faculty.EmployeeID)
	return &faculty, nil
}

// Get returns an active faculty member by ID.
func (m *FacultyManager) Get(id uint) (*models.Faculty, error) {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	return m.get(id)
}

func (m *FacultyManager) get(id uint) (*models.Faculty, error) {
	var faculty models.Faculty
	err := m.DB.Where("is_active = ?", true).First(&faculty, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("faculty %d", id)
		}
		return nil, apperr.Storage(err)
	}
	return &faculty, nil
}

// ByUserID resolves the faculty profile behind a logged-in account.
func (m *FacultyManager) ByUserID(userID uint) (*models.Faculty, error) {
	var faculty models.Faculty
	err := m.DB.Where("user_id = ? AND is_active = ?", userID, true).First(&faculty).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("faculty profile for user %d", userID)
		}
		return nil, apperr.Storage(err)
	}
	return &faculty, nil
}

// List returns one page of active faculty ordered by last name.
func (m *FacultyManager) List(req PageRequest) ([]models.Faculty, PageInfo, error) {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return nil, PageInfo{}, err
	}

	base := m.DB.Model(&models.Faculty{}).Where("is_active = ?", true)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, PageInfo{}, apperr.Storage(err)
	}

	var list []models.Faculty
	err := base.Scopes(Paginate(req)).
		Order("last_name, first_name").
		Find(&list).Error
	if err != nil {
		return nil, PageInfo{}, apperr.Storage(err)
	}
	return list, NewPageInfo(req, total), nil
}

// Search matches name, department, specialization or employee id,
// case-insensitively.
func (m *FacultyManager) Search(term string) ([]models.Faculty, error) {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}

	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	var list []models.Faculty
	err := m.DB.Where("is_active = ?", true).
		Where(`LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(department) LIKE ?
			OR LOWER(specialization) LIKE ? OR LOWER(employee_id) LIKE ?`,
			pattern, pattern, pattern, pattern, pattern).
		Order("last_name, first_name").
		Find(&list).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return list, nil
}

// ByDepartment returns the active faculty of one department.
func (m *FacultyManager) ByDepartment(department string) ([]models.Faculty, error) {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	var list []models.Faculty
	err := m.DB.Where("is_active = ? AND LOWER(department) = ?", true, strings.ToLower(department)).
		Order("last_name, first_name").
		Find(&list).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return list, nil
}

// Update applies the non-nil fields of upd to the faculty row.
func (m *FacultyManager) Update(id uint, upd models.FacultyUpdate) (*models.Faculty, error) {
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
	if upd.Department != nil {
		changes["department"] = *upd.Department
	}
	if upd.Specialization != nil {
		changes["specialization"] = *upd.Specialization
	}
	if upd.Phone != nil {
		changes["phone"] = *upd.Phone
	}
	if upd.OfficeLocation != nil {
		changes["office_location"] = *upd.OfficeLocation
	}
	if upd.Salary != nil {
		if *upd.Salary < 0 {
			return nil, apperr.Validationf("salary must not be negative")
		}
		changes["salary"] = *upd.Salary
	}
	if len(changes) == 0 {
		return nil, apperr.Validationf("no fields to update")
	}

	res := m.DB.Model(&models.Faculty{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(changes)
	if res.Error != nil {
		return nil, apperr.Storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFoundf("faculty %d", id)
	}
	return m.get(id)
}

// Deactivate soft-disables the faculty member and their login. Historical
// class associations are left untouched.
func (m *FacultyManager) Deactivate(id uint) error {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return err
	}

	faculty, err := m.get(id)
	if err != nil {
		return err
	}

	return m.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(faculty).Update("is_active", false).Error; err != nil {
			return apperr.Storage(err)
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", faculty.UserID).
			Update("is_active", false).Error; err != nil {
			return apperr.Storage(err)
		}
		slog.Info("faculty deactivated", "id", id)
		return nil
	})
}

// Workload aggregates the active teaching load of one faculty member.
func (m *FacultyManager) Workload(id uint) (*models.FacultyWorkload, error) {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	if _, err := m.get(id); err != nil {
		return nil, err
	}

	var row struct {
		TotalClasses  int
		TotalStudents int
		AvgClassSize  float64
	}
	err := m.DB.Model(&models.Class{}).
		Select(`COUNT(*) AS total_classes,
			COALESCE(SUM(current_enrollment), 0) AS total_students,
			ROUND(COALESCE(AVG(current_enrollment), 0), 2) AS avg_class_size`).
		Where("faculty_id = ? AND status = ?", id, models.ClassActive).
		Scan(&row).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}

	return &models.FacultyWorkload{
		TotalClasses:  row.TotalClasses,
		TotalStudents: row.TotalStudents,
		AvgClassSize:  row.AvgClassSize,
	}, nil
}

// Classes lists every class taught by the faculty member, joined with the
// course name for display.
func (m *FacultyManager) Classes(id uint) ([]models.ClassRow, error) {
	if err := m.Auth.RequireAny(models.RoleAdmin, models.RoleFaculty); err != nil {
		return nil, err
	}

	var rows []models.ClassRow
	err := m.DB.Table("classes").
		Select(`classes.id, classes.class_code, courses.course_name,
			faculties.first_name || ' ' || faculties.last_name AS faculty_name,
			classes.semester, classes.academic_year, classes.schedule, classes.room,
			classes.current_enrollment, classes.max_capacity, classes.status`).
		Joins("JOIN courses ON courses.id = classes.course_id").
		Joins("JOIN faculties ON faculties.id = classes.faculty_id").
		Where("classes.faculty_id = ? AND classes.deleted_at IS NULL", id).
		Order("classes.academic_year DESC, classes.semester").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return rows, nil
}
