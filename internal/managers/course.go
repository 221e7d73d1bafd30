package managers

import (
	"errors"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"faculty-crm/internal/apperr"
	"faculty-crm/models"
)

// CourseManager owns the course catalog. Courses must exist before classes
// can reference them.
type CourseManager struct {
	DB   *gorm.DB
	Auth *AuthManager
}

func NewCourseManager(db *gorm.DB, auth *AuthManager) *CourseManager {
	return &CourseManager{DB: db, Auth: auth}
}

func (m *CourseManager) Create(input models.CourseInput) (*models.Course, error) {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	course := models.Course{
		CourseCode:    strings.ToUpper(strings.TrimSpace(input.CourseCode)),
		CourseName:    input.CourseName,
		Description:   input.Description,
		Credits:       input.Credits,
		Department:    input.Department,
		Prerequisites: input.Prerequisites,
	}
	if err := m.DB.Create(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicatef("course code %s already exists", course.CourseCode)
		}
		return nil, apperr.Storage(err)
	}
	slog.Info("course created", "id", course.ID, "code", course.CourseCode)
	return &course, nil
}

func (m *CourseManager) Get(id uint) (*models.Course, error) {
	var course models.Course
	err := m.DB.First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("course %d", id)
		}
		return nil, apperr.Storage(err)
	}
	return &course, nil
}

// ByCode looks a course up by its catalog code.
func (m *CourseManager) ByCode(code string) (*models.Course, error) {
	var course models.Course
	err := m.DB.Where("course_code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("course %s", code)
		}
		return nil, apperr.Storage(err)
	}
	return &course, nil
}

func (m *CourseManager) List() ([]models.Course, error) {
	var list []models.Course
	if err := m.DB.Order("course_code").Find(&list).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return list, nil
}

// Update replaces the mutable catalog fields. The course code is immutable;
// classes reference it on screen.
func (m *CourseManager) Update(id uint, input models.CourseInput) (*models.Course, error) {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	course, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	course.CourseName = input.CourseName
	course.Description = input.Description
	course.Credits = input.Credits
	course.Department = input.Department
	course.Prerequisites = input.Prerequisites
	if err := m.DB.Save(course).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return course, nil
}
