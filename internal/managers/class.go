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

// ClassManager owns scheduled classes, rosters and attendance sessions.
// Roster changes are allowed for admin and faculty; everything else that
// mutates requires admin.
type ClassManager struct {
	DB   *gorm.DB
	Auth *AuthManager
}

func NewClassManager(db *gorm.DB, auth *AuthManager) *ClassManager {
	return &ClassManager{DB: db, Auth: auth}
}

const classRowSelect = `classes.id, classes.class_code, courses.course_name,
	faculties.first_name || ' ' || faculties.last_name AS faculty_name,
	classes.semester, classes.academic_year, classes.schedule, classes.room,
	classes.current_enrollment, classes.max_capacity, classes.status`

func (m *ClassManager) rowQuery() *gorm.DB {
	return m.DB.Table("classes").
		Select(classRowSelect).
		Joins("JOIN courses ON courses.id = classes.course_id").
		Joins("JOIN faculties ON faculties.id = classes.faculty_id").
		Where("classes.deleted_at IS NULL")
}

// Create schedules a new class. The referenced course and faculty member
// must already exist.
func (m *ClassManager) Create(input models.ClassInput) (*models.Class, error) {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := m.checkRefs(input.CourseID, input.FacultyID); err != nil {
		return nil, err
	}

	class := models.Class{
		ClassCode:    strings.ToUpper(strings.TrimSpace(input.ClassCode)),
		CourseID:     input.CourseID,
		FacultyID:    input.FacultyID,
		Semester:     input.Semester,
		AcademicYear: input.AcademicYear,
		Schedule:     input.Schedule,
		Room:         input.Room,
		MaxCapacity:  input.MaxCapacity,
		Status:       models.ClassActive,
	}
	if err := m.DB.Create(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicatef("class code %s already exists", class.ClassCode)
		}
		return nil, apperr.Storage(err)
	}
	slog.Info("class created", "id", class.ID, "code", class.ClassCode)
	return &class, nil
}

func (m *ClassManager) checkRefs(courseID, facultyID uint) error {
	var count int64
	if err := m.DB.Model(&models.Course{}).Where("id = ?", courseID).Count(&count).Error; err != nil {
		return apperr.Storage(err)
	}
	if count == 0 {
		return apperr.NotFoundf("course %d", courseID)
	}
	if err := m.DB.Model(&models.Faculty{}).
		Where("id = ? AND is_active = ?", facultyID, true).
		Count(&count).Error; err != nil {
		return apperr.Storage(err)
	}
	if count == 0 {
		return apperr.NotFoundf("faculty %d", facultyID)
	}
	return nil
}

func (m *ClassManager) Get(id uint) (*models.Class, error) {
	var class models.Class
	err := m.DB.Preload("Course").Preload("Faculty").First(&class, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("class %d", id)
		}
		return nil, apperr.Storage(err)
	}
	return &class, nil
}

// List returns one page of joined class rows, newest academic year first.
func (m *ClassManager) List(req PageRequest) ([]models.ClassRow, PageInfo, error) {
	var total int64
	if err := m.DB.Model(&models.Class{}).Count(&total).Error; err != nil {
		return nil, PageInfo{}, apperr.Storage(err)
	}

	var rows []models.ClassRow
	err := m.rowQuery().
		Scopes(Paginate(req)).
		Order("classes.academic_year DESC, classes.semester, classes.class_code").
		Scan(&rows).Error
	if err != nil {
		return nil, PageInfo{}, apperr.Storage(err)
	}
	return rows, NewPageInfo(req, total), nil
}

// Search matches class code, course name, faculty name, semester or room.
func (m *ClassManager) Search(term string) ([]models.ClassRow, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	var rows []models.ClassRow
	err := m.rowQuery().
		Where(`LOWER(classes.class_code) LIKE ? OR LOWER(courses.course_name) LIKE ?
			OR LOWER(faculties.first_name || ' ' || faculties.last_name) LIKE ?
			OR LOWER(classes.semester) LIKE ? OR LOWER(classes.room) LIKE ?`,
			pattern, pattern, pattern, pattern, pattern).
		Order("classes.academic_year DESC, classes.semester").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return rows, nil
}

// BySemester filters classes of one term.
func (m *ClassManager) BySemester(semester, academicYear string) ([]models.ClassRow, error) {
	var rows []models.ClassRow
	err := m.rowQuery().
		Where("LOWER(classes.semester) = ? AND classes.academic_year = ?",
			strings.ToLower(semester), academicYear).
		Order("classes.class_code").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return rows, nil
}

// Update applies the non-nil fields, re-validating course/faculty
// references when they change. Capacity cannot drop below the current
// enrollment.
func (m *ClassManager) Update(id uint, upd models.ClassUpdate) (*models.Class, error) {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return nil, err
	}

	class, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if upd.CourseID != nil {
		changes["course_id"] = *upd.CourseID
	}
	if upd.FacultyID != nil {
		changes["faculty_id"] = *upd.FacultyID
	}
	if upd.Semester != nil {
		changes["semester"] = *upd.Semester
	}
	if upd.AcademicYear != nil {
		changes["academic_year"] = *upd.AcademicYear
	}
	if upd.Schedule != nil {
		changes["schedule"] = *upd.Schedule
	}
	if upd.Room != nil {
		changes["room"] = *upd.Room
	}
	if upd.MaxCapacity != nil {
		if *upd.MaxCapacity < class.CurrentEnrollment {
			return nil, apperr.Validationf("capacity %d is below current enrollment %d",
				*upd.MaxCapacity, class.CurrentEnrollment)
		}
		changes["max_capacity"] = *upd.MaxCapacity
	}
	if len(changes) == 0 {
		return nil, apperr.Validationf("no fields to update")
	}

	courseID := class.CourseID
	if upd.CourseID != nil {
		courseID = *upd.CourseID
	}
	facultyID := class.FacultyID
	if upd.FacultyID != nil {
		facultyID = *upd.FacultyID
	}
	if err := m.checkRefs(courseID, facultyID); err != nil {
		return nil, err
	}

	if err := m.DB.Model(class).Updates(changes).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return m.Get(id)
}

// ChangeStatus moves the class between active, inactive and completed.
func (m *ClassManager) ChangeStatus(id uint, status string) error {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return err
	}
	switch status {
	case models.ClassActive, models.ClassInactive, models.ClassCompleted:
	default:
		return apperr.Validationf("unknown class status %q", status)
	}

	res := m.DB.Model(&models.Class{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return apperr.Storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("class %d", id)
	}
	slog.Info("class status changed", "id", id, "status", status)
	return nil
}

// Enroll adds a student to a class. The capacity check, duplicate check,
// insert and counter increment run in one transaction so the enrolled count
// can never pass the capacity.
func (m *ClassManager) Enroll(studentID, classID uint) error {
	if err := m.Auth.RequireAny(models.RoleAdmin, models.RoleFaculty); err != nil {
		return err
	}

	return m.DB.Transaction(func(tx *gorm.DB) error {
		var class models.Class
		if err := tx.First(&class, classID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("class %d", classID)
			}
			return apperr.Storage(err)
		}
		if class.Status != models.ClassActive {
			return apperr.Validationf("class %s is %s", class.ClassCode, class.Status)
		}

		var student models.Student
		if err := tx.Where("is_active = ?", true).First(&student, studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("student %d", studentID)
			}
			return apperr.Storage(err)
		}

		if class.CurrentEnrollment >= class.MaxCapacity {
			return apperr.ErrCapacityExceeded
		}

		var count int64
		if err := tx.Model(&models.Enrollment{}).
			Where("student_id = ? AND class_id = ?", studentID, classID).
			Count(&count).Error; err != nil {
			return apperr.Storage(err)
		}
		if count > 0 {
			return apperr.Duplicatef("student %s is already enrolled in %s",
				student.StudentNumber, class.ClassCode)
		}

		enrollment := models.Enrollment{
			StudentID:      studentID,
			ClassID:        classID,
			EnrollmentDate: time.Now(),
			Status:         models.EnrollmentEnrolled,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Duplicatef("student %s is already enrolled in %s",
					student.StudentNumber, class.ClassCode)
			}
			return apperr.Storage(err)
		}

		err := tx.Model(&class).
			Update("current_enrollment", gorm.Expr("current_enrollment + 1")).Error
		if err != nil {
			return apperr.Storage(err)
		}

		slog.Info("student enrolled", "student", studentID, "class", classID)
		return nil
	})
}

// Drop removes a student from a class and decrements the counter.
func (m *ClassManager) Drop(studentID, classID uint) error {
	if err := m.Auth.RequireAny(models.RoleAdmin, models.RoleFaculty); err != nil {
		return err
	}

	return m.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().
			Where("student_id = ? AND class_id = ?", studentID, classID).
			Delete(&models.Enrollment{})
		if res.Error != nil {
			return apperr.Storage(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFoundf("student %d is not enrolled in class %d", studentID, classID)
		}

		err := tx.Model(&models.Class{}).
			Where("id = ? AND current_enrollment > 0", classID).
			Update("current_enrollment", gorm.Expr("current_enrollment - 1")).Error
		if err != nil {
			return apperr.Storage(err)
		}

		slog.Info("student dropped", "student", studentID, "class", classID)
		return nil
	})
}

// Roster lists the students enrolled in a class.
func (m *ClassManager) Roster(classID uint) ([]models.RosterRow, error) {
	if err := m.Auth.RequireAny(models.RoleAdmin, models.RoleFaculty); err != nil {
		return nil, err
	}
	if _, err := m.Get(classID); err != nil {
		return nil, err
	}

	var rows []models.RosterRow
	err := m.DB.Table("enrollments").
		Select(`enrollments.id AS enrollment_id, students.id AS student_id, students.student_number,
			students.first_name || ' ' || students.last_name AS name,
			students.major, students.year_level,
			enrollments.enrollment_date AS enrolled_at,
			enrollments.grade, enrollments.status`).
		Joins("JOIN students ON students.id = enrollments.student_id").
		Where("enrollments.class_id = ? AND enrollments.deleted_at IS NULL AND students.is_active = ?",
			classID, true).
		Order("students.last_name, students.first_name").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return rows, nil
}

// SetGrade records a final grade on an enrollment.
func (m *ClassManager) SetGrade(studentID, classID uint, grade string) error {
	if err := m.Auth.RequireAny(models.RoleAdmin, models.RoleFaculty); err != nil {
		return err
	}

	res := m.DB.Model(&models.Enrollment{}).
		Where("student_id = ? AND class_id = ?", studentID, classID).
		Updates(map[string]any{"grade": grade, "status": models.EnrollmentCompleted})
	if res.Error != nil {
		return apperr.Storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("student %d is not enrolled in class %d", studentID, classID)
	}
	return nil
}

// Delete removes a class that has no enrollments. Classes with live
// enrollments are blocked from deletion; drop or complete them first.
func (m *ClassManager) Delete(id uint) error {
	if err := m.Auth.Require(models.RoleAdmin); err != nil {
		return err
	}

	return m.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Enrollment{}).Where("class_id = ?", id).Count(&count).Error; err != nil {
			return apperr.Storage(err)
		}
		if count > 0 {
			return apperr.Validationf("class has %d enrollments; drop them before deleting", count)
		}

		res := tx.Delete(&models.Class{}, id)
		if res.Error != nil {
			return apperr.Storage(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFoundf("class %d", id)
		}
		return nil
	})
}

// RecordAttendance upserts the attendance row for one class session. The
// date is truncated to the day.
func (m *ClassManager) RecordAttendance(classID, studentID uint, date time.Time, status, notes string) error {
	if err := m.Auth.RequireAny(models.RoleAdmin, models.RoleFaculty); err != nil {
		return err
	}
	switch status {
	case models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLate:
	default:
		return apperr.Validationf("unknown attendance status %q", status)
	}

	var count int64
	if err := m.DB.Model(&models.Enrollment{}).
		Where("student_id = ? AND class_id = ?", studentID, classID).
		Count(&count).Error; err != nil {
		return apperr.Storage(err)
	}
	if count == 0 {
		return apperr.NotFoundf("student %d is not enrolled in class %d", studentID, classID)
	}

	day := date.Truncate(24 * time.Hour)
	var existing models.Attendance
	err := m.DB.Where("class_id = ? AND student_id = ? AND date = ?", classID, studentID, day).
		First(&existing).Error
	switch {
	case err == nil:
		existing.Status = status
		existing.Notes = notes
		if err := m.DB.Save(&existing).Error; err != nil {
			return apperr.Storage(err)
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		record := models.Attendance{
			ClassID:   classID,
			StudentID: studentID,
			Date:      day,
			Status:    status,
			Notes:     notes,
		}
		if err := m.DB.Create(&record).Error; err != nil {
			return apperr.Storage(err)
		}
		return nil
	default:
		return apperr.Storage(err)
	}
}

// ClassAttendance lists the attendance records of one class, newest first.
func (m *ClassManager) ClassAttendance(classID uint) ([]models.AttendanceRow, error) {
	if err := m.Auth.RequireAny(models.RoleAdmin, models.RoleFaculty); err != nil {
		return nil, err
	}

	var rows []models.AttendanceRow
	err := m.DB.Table("attendances").
		Select(`attendances.date, classes.class_code, students.student_number,
			students.first_name || ' ' || students.last_name AS name,
			attendances.status, attendances.notes`).
		Joins("JOIN classes ON classes.id = attendances.class_id").
		Joins("JOIN students ON students.id = attendances.student_id").
		Where("attendances.class_id = ? AND attendances.deleted_at IS NULL", classID).
		Order("attendances.date DESC, students.last_name").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return rows, nil
}
