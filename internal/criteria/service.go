package criteria

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for the criteria registry.
type Service struct {
	Repo Repo
}

// ListActive returns active criteria in display order.
func (s *Service) ListActive(ctx context.Context) ([]Criterion, error) {
	return s.Repo.ListActive(ctx)
}

// List returns every criterion in display order.
func (s *Service) List(ctx context.Context) ([]Criterion, error) {
	return s.Repo.List(ctx)
}

// Get returns a criterion by ID.
func (s *Service) Get(ctx context.Context, criterionID string) (Criterion, error) {
	if criterionID == "" {
		return Criterion{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, criterionID)
}

// Create validates and stores a new criterion.
func (s *Service) Create(ctx context.Context, name string, weight float64, description string, sortOrder int, isActive bool) (Criterion, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Criterion{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if weight < 0 || weight > 1 {
		return Criterion{}, fmt.Errorf("%w: weight must be between 0 and 1", ErrInvalidInput)
	}

	now := time.Now().UTC()
	criterion := Criterion{
		ID:          uuid.NewString(),
		Name:        name,
		Weight:      weight,
		Description: strings.TrimSpace(description),
		IsActive:    isActive,
		SortOrder:   sortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, criterion); err != nil {
		return Criterion{}, err
	}
	return criterion, nil
}

// Update merges the provided fields into an existing criterion.
func (s *Service) Update(ctx context.Context, criterionID string, update Update) (Criterion, error) {
	if criterionID == "" {
		return Criterion{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return Criterion{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if update.Weight != nil && (*update.Weight < 0 || *update.Weight > 1) {
		return Criterion{}, fmt.Errorf("%w: weight must be between 0 and 1", ErrInvalidInput)
	}
	return s.Repo.Update(ctx, criterionID, update)
}

// Delete hard-deletes a criterion.
func (s *Service) Delete(ctx context.Context, criterionID string) error {
	if criterionID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, criterionID)
}

// ValidateWeights reports whether the active weights fit the 1.0 budget,
// optionally excluding one criterion (for "what if I change this one" checks).
func (s *Service) ValidateWeights(ctx context.Context, excludeID string) (WeightReport, error) {
	total, err := s.Repo.SumActiveWeights(ctx, excludeID)
	if err != nil {
		return WeightReport{}, err
	}
	total = roundWeight(total)
	return WeightReport{
		IsValid:      total <= 1.0+weightEpsilon,
		CurrentTotal: total,
		Remaining:    roundWeight(1.0 - total),
	}, nil
}

// Weights are stored with three decimal places; keep reports on the same grid.
func roundWeight(v float64) float64 {
	return math.Round(v*1000) / 1000
}
