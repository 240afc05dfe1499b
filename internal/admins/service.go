package admins

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/chidung091/hr-scanning-sub001/internal/shared/auth"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/telemetry"
)

const minPasswordLength = 8

// Service contains business logic for admin users and their sessions.
type Service struct {
	Repo Repo
}

// Login checks the credentials and returns the admin plus a signed session
// token. Unknown usernames and wrong passwords both come back as
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (Admin, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Admin{}, "", ErrInvalidCredentials
	}

	admin, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Admin{}, "", ErrInvalidCredentials
		}
		return Admin{}, "", err
	}
	if !admin.IsActive {
		return Admin{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return Admin{}, "", ErrInvalidCredentials
	}

	token, err := auth.SignSessionToken(auth.Claims{Sub: admin.ID, Username: admin.Username})
	if err != nil {
		return Admin{}, "", err
	}
	if err := s.Repo.UpdateLastLogin(ctx, admin.ID); err != nil {
		telemetry.Warn("admin.last_login_update_failed", map[string]any{
			"admin_id": admin.ID,
			"error":    err.Error(),
		})
	}
	return admin, token, nil
}

// VerifyActive reports whether the admin still exists and is active. The
// session guard calls this on every request so a deactivated admin loses
// access immediately.
func (s *Service) VerifyActive(ctx context.Context, adminID string) error {
	admin, err := s.Repo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if !admin.IsActive {
		return fmt.Errorf("%w: admin is inactive", ErrInvalidCredentials)
	}
	return nil
}

// Create adds a new admin with a bcrypt-hashed password.
func (s *Service) Create(ctx context.Context, username, password string, isActive bool) (Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Admin{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return Admin{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Admin{}, err
	}

	now := time.Now().UTC()
	admin := Admin{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     isActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, admin); err != nil {
		return Admin{}, err
	}
	return admin, nil
}

// Get returns an admin by ID.
func (s *Service) Get(ctx context.Context, adminID string) (Admin, error) {
	if adminID == "" {
		return Admin{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, adminID)
}

// List returns all admins.
func (s *Service) List(ctx context.Context) ([]Admin, error) {
	return s.Repo.List(ctx)
}

// UpdateInput carries optional plaintext fields for an admin update.
type UpdateInput struct {
	Username *string
	Password *string
	IsActive *bool
}

// Update merges the given fields, hashing a new password when present.
func (s *Service) Update(ctx context.Context, adminID string, input UpdateInput) (Admin, error) {
	if adminID == "" {
		return Admin{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	update := Update{IsActive: input.IsActive}
	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return Admin{}, fmt.Errorf("%w: username cannot be empty", ErrInvalidInput)
		}
		update.Username = &username
	}
	if input.Password != nil {
		if len(*input.Password) < minPasswordLength {
			return Admin{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return Admin{}, err
		}
		hashed := string(hash)
		update.PasswordHash = &hashed
	}
	return s.Repo.Update(ctx, adminID, update)
}

// Delete removes an admin.
func (s *Service) Delete(ctx context.Context, adminID string) error {
	if adminID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, adminID)
}
