package jobs

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("job not found")
	ErrInvalidInput = errors.New("invalid job input")
)

// Update carries the partial-merge fields for an update; nil means unchanged.
type Update struct {
	Title        *string
	Headcount    *int
	WorkingHours *string
	WorkingDays  *string
	Requirements *string
	NiceToHave   *string
	IsActive     *bool
	SortOrder    *int
}

// Repo defines persistence operations for jobs.
type Repo interface {
	Create(ctx context.Context, job Job) error
	Update(ctx context.Context, jobID string, update Update) (Job, error)
	Delete(ctx context.Context, jobID string) error
	GetByID(ctx context.Context, jobID string) (Job, error)
	List(ctx context.Context, activeOnly bool) ([]Job, error)
}
