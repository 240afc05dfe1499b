package criteria

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("criterion not found")
	ErrInvalidInput = errors.New("invalid criterion input")
	// ErrWeightBudget is returned when a write would push the sum of active
	// weights past 1.0. Enforced inside the repository transaction so
	// concurrent writers cannot race past the check.
	ErrWeightBudget = errors.New("active criteria weights exceed 1.0")
)

// Update carries the partial-merge fields for an update; nil means unchanged.
type Update struct {
	Name        *string
	Weight      *float64
	Description *string
	IsActive    *bool
	SortOrder   *int
}

// Repo defines persistence operations for criteria.
type Repo interface {
	Create(ctx context.Context, criterion Criterion) error
	Update(ctx context.Context, criterionID string, update Update) (Criterion, error)
	Delete(ctx context.Context, criterionID string) error
	GetByID(ctx context.Context, criterionID string) (Criterion, error)
	List(ctx context.Context) ([]Criterion, error)
	ListActive(ctx context.Context) ([]Criterion, error)
	SumActiveWeights(ctx context.Context, excludeID string) (float64, error)
}
