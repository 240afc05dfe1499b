package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for the job catalog.
type Service struct {
	Repo Repo
}

// List returns jobs in display order; activeOnly filters to open positions.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]Job, error) {
	return s.Repo.List(ctx, activeOnly)
}

// Get returns a job by ID.
func (s *Service) Get(ctx context.Context, jobID string) (Job, error) {
	if jobID == "" {
		return Job{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, jobID)
}

// Create validates and stores a new job.
func (s *Service) Create(ctx context.Context, job Job) (Job, error) {
	job.Title = strings.TrimSpace(job.Title)
	if job.Title == "" {
		return Job{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if job.Headcount <= 0 {
		job.Headcount = 1
	}

	now := time.Now().UTC()
	job.ID = uuid.NewString()
	job.CreatedAt = now
	job.UpdatedAt = now
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Update merges the provided fields into an existing job.
func (s *Service) Update(ctx context.Context, jobID string, update Update) (Job, error) {
	if jobID == "" {
		return Job{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return Job{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
	}
	if update.Headcount != nil && *update.Headcount <= 0 {
		return Job{}, fmt.Errorf("%w: headcount must be positive", ErrInvalidInput)
	}
	return s.Repo.Update(ctx, jobID, update)
}

// Delete hard-deletes a job.
func (s *Service) Delete(ctx context.Context, jobID string) error {
	if jobID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, jobID)
}
