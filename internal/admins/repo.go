package admins

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("admin not found")
	ErrInvalidInput       = errors.New("invalid admin input")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Update carries optional admin fields for partial updates.
type Update struct {
	Username     *string
	PasswordHash *string
	IsActive     *bool
}

// Repo defines persistence operations for admin users.
type Repo interface {
	Create(ctx context.Context, admin Admin) error
	GetByID(ctx context.Context, adminID string) (Admin, error)
	GetByUsername(ctx context.Context, username string) (Admin, error)
	List(ctx context.Context) ([]Admin, error)
	Update(ctx context.Context, adminID string, update Update) (Admin, error)
	Delete(ctx context.Context, adminID string) error
	UpdateLastLogin(ctx context.Context, adminID string) error
}
