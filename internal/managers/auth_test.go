package managers

import (
	"errors"
	"testing"

	"faculty-crm/internal/apperr"
	"faculty-crm/internal/seed"
	"faculty-crm/models"
)

func TestLoginDefaultAdmin(t *testing.T) {
	db := setupTestDB(t)
	auth := loginAdmin(t, db)

	session := auth.Current()
	if session == nil {
		t.Fatal("expected an open session after login")
	}
	if session.Role != models.RoleAdmin {
		t.Fatalf("expected admin role, got %q", session.Role)
	}
	if session.Username != seed.DefaultAdminUsername {
		t.Fatalf("expected username %q, got %q", seed.DefaultAdminUsername, session.Username)
	}
	if session.ID == "" {
		t.Fatal("expected a session id")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	if err := seed.EnsureDefaultAdmin(db); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	auth := NewAuthManager(db)
	if _, err := auth.Login(seed.DefaultAdminUsername, "wrong"); !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if auth.IsLoggedIn() {
		t.Fatal("failed login must not open a session")
	}
}

func TestLoginUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthManager(db)
	if _, err := auth.Login("nobody", "whatever"); !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	db := setupTestDB(t)
	auth := loginAdmin(t, db)

	user, err := auth.CreateUser(nil, models.CreateUserInput{
		Username: "retired",
		Email:    "retired@university.edu",
		Password: "secret123",
		Role:     models.RoleFaculty,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := auth.DeactivateUser(user.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	other := NewAuthManager(db)
	if _, err := other.Login("retired", "secret123"); !errors.Is(err, apperr.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	db := setupTestDB(t)
	auth := loginAdmin(t, db)

	input := models.CreateUserInput{
		Username: "dup",
		Email:    "dup@university.edu",
		Password: "secret123",
		Role:     models.RoleStudent,
	}
	if _, err := auth.CreateUser(nil, input); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := auth.CreateUser(nil, input); !errors.Is(err, apperr.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	db := setupTestDB(t)
	auth := loginAdmin(t, db)

	_, err := auth.CreateUser(nil, models.CreateUserInput{
		Username: "x",
		Email:    "not-an-email",
		Password: "123",
		Role:     "superuser",
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPermissions(t *testing.T) {
	db := setupTestDB(t)
	auth := loginAdmin(t, db)

	// Admin satisfies every role check.
	if !auth.HasPermission(models.RoleFaculty) {
		t.Fatal("admin should pass the faculty check")
	}
	if err := auth.RequireAny(models.RoleFaculty, models.RoleStudent); err != nil {
		t.Fatalf("admin should pass RequireAny: %v", err)
	}

	auth.Logout()
	if auth.IsLoggedIn() {
		t.Fatal("logout should close the session")
	}
	if err := auth.Require(models.RoleAdmin); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied without a session, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	auth := loginAdmin(t, db)

	if err := auth.ChangePassword("wrong", "newsecret"); !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong old password, got %v", err)
	}
	if err := auth.ChangePassword(seed.DefaultAdminPassword, "short"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation for short password, got %v", err)
	}
	if err := auth.ChangePassword(seed.DefaultAdminPassword, "newsecret"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	auth.Logout()
	if _, err := auth.Login(seed.DefaultAdminUsername, seed.DefaultAdminPassword); !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Fatalf("old password should be rejected, got %v", err)
	}
	if _, err := auth.Login(seed.DefaultAdminUsername, "newsecret"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}
