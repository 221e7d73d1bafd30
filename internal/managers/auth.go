package managers

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"faculty-crm/internal/apperr"
	"faculty-crm/models"
)

// Session is the in-memory identity of the logged-in user. It lives for the
// duration of the process; there are no tokens to persist.
type Session struct {
	ID       string
	UserID   uint
	Username string
	Role     string
	LoginAt  time.Time
}

// AuthManager verifies credentials against the users table and tracks the
// current session.
type AuthManager struct {
	DB      *gorm.DB
	session *Session
}

func NewAuthManager(db *gorm.DB) *AuthManager {
	return &AuthManager{DB: db}
}

// Login authenticates the username/password pair and opens a session.
func (m *AuthManager) Login(username, password string) (*Session, error) {
	var user models.User
	err := m.DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, apperr.Storage(err)
	}

	if !user.IsActive {
		return nil, apperr.ErrAccountInactive
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	m.session = &Session{
		ID:       uuid.New().String(),
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		LoginAt:  time.Now(),
	}
	slog.Info("user logged in", "username", user.Username, "role", user.Role, "session", m.session.ID)
	return m.session, nil
}

// Logout closes the current session.
func (m *AuthManager) Logout() {
	if m.session != nil {
		slog.Info("user logged out", "username", m.session.Username)
	}
	m.session = nil
}

// Current returns the active session, or nil when nobody is logged in.
func (m *AuthManager) Current() *Session {
	return m.session
}

func (m *AuthManager) IsLoggedIn() bool {
	return m.session != nil
}

// HasPermission reports whether the current user holds the required role.
// Admin satisfies every check.
func (m *AuthManager) HasPermission(role string) bool {
	if m.session == nil {
		return false
	}
	if m.session.Role == models.RoleAdmin {
		return true
	}
	return m.session.Role == role
}

// Require returns ErrPermissionDenied unless the current user holds the
// required role (or is admin).
func (m *AuthManager) Require(role string) error {
	if !m.HasPermission(role) {
		return fmt.Errorf("%w: %s role required", apperr.ErrPermissionDenied, role)
	}
	return nil
}

// RequireAny passes when the current user holds any of the listed roles.
func (m *AuthManager) RequireAny(roles ...string) error {
	for _, role := range roles {
		if m.HasPermission(role) {
			return nil
		}
	}
	return fmt.Errorf("%w: one of %v required", apperr.ErrPermissionDenied, roles)
}

// CreateUser opens a new account with a hashed password. Used for admins
// directly and by the faculty/student managers for profile accounts.
func (m *AuthManager) CreateUser(tx *gorm.DB, input models.CreateUserInput) (*models.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if tx == nil {
		tx = m.DB
	}

	var count int64
	if err := tx.Model(&models.User{}).
		Where("username = ? OR email = ?", input.Username, input.Email).
		Count(&count).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	if count > 0 {
		return nil, apperr.Duplicatef("username or email already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		IsActive:     true,
	}
	if err := tx.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicatef("username or email already taken")
		}
		return nil, apperr.Storage(err)
	}
	return &user, nil
}

// ChangePassword verifies the old password for the current user and stores
// a new hash.
func (m *AuthManager) ChangePassword(oldPassword, newPassword string) error {
	if m.session == nil {
		return apperr.ErrPermissionDenied
	}
	if len(newPassword) < 6 {
		return apperr.Validationf("new password must be at least 6 characters")
	}

	var user models.User
	if err := m.DB.First(&user, m.session.UserID).Error; err != nil {
		return apperr.Storage(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return apperr.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Storage(err)
	}
	if err := m.DB.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		return apperr.Storage(err)
	}
	slog.Info("password changed", "username", user.Username)
	return nil
}

// DeactivateUser soft-disables an account so it can no longer log in.
func (m *AuthManager) DeactivateUser(userID uint) error {
	if err := m.Require(models.RoleAdmin); err != nil {
		return err
	}
	res := m.DB.Model(&models.User{}).Where("id = ?", userID).Update("is_active", false)
	if res.Error != nil {
		return apperr.Storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("user %d", userID)
	}
	return nil
}
