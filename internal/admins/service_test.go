package admins

import (
	"context"
	"errors"
	"testing"
)

func TestLoginAndVerifyActive(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	svc := &Service{Repo: NewMemoryRepo()}

	admin, err := svc.Create(context.Background(), "hr-lead", "correct horse battery", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if admin.PasswordHash == "correct horse battery" {
		t.Fatal("password must be stored hashed")
	}

	loggedIn, token, err := svc.Login(context.Background(), "hr-lead", "correct horse battery")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if loggedIn.ID != admin.ID {
		t.Fatalf("expected admin %s, got %s", admin.ID, loggedIn.ID)
	}

	if err := svc.VerifyActive(context.Background(), admin.ID); err != nil {
		t.Fatalf("VerifyActive: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	svc := &Service{Repo: NewMemoryRepo()}

	if _, err := svc.Create(context.Background(), "hr-lead", "correct horse battery", true); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "hr-lead", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestLoginRejectsInactiveAdmin(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	svc := &Service{Repo: NewMemoryRepo()}

	admin, err := svc.Create(context.Background(), "hr-lead", "correct horse battery", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	inactive := false
	if _, err := svc.Update(context.Background(), admin.ID, UpdateInput{IsActive: &inactive}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "hr-lead", "correct horse battery"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for inactive admin, got %v", err)
	}
}

func TestVerifyActiveAfterDeactivationOrDeletion(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	admin, err := svc.Create(context.Background(), "hr-lead", "correct horse battery", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	inactive := false
	if _, err := svc.Update(context.Background(), admin.ID, UpdateInput{IsActive: &inactive}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := svc.VerifyActive(context.Background(), admin.ID); err == nil {
		t.Fatal("expected error for inactive admin")
	}

	if err := svc.Delete(context.Background(), admin.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.VerifyActive(context.Background(), admin.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted admin, got %v", err)
	}
}

func TestCreateRejectsShortPasswordAndDuplicateUsername(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	if _, err := svc.Create(context.Background(), "hr-lead", "short", true); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "hr-lead", "correct horse battery", true); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), "hr-lead", "another password", true); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}
