package criteria

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores criteria in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Criterion
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Criterion)}
}

// Create stores the criterion, enforcing the active-weight budget under the lock.
func (r *MemoryRepo) Create(ctx context.Context, criterion Criterion) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if criterion.IsActive {
		if sumActiveLocked(r.byID, "")+criterion.Weight > 1.0+weightEpsilon {
			return ErrWeightBudget
		}
	}
	r.byID[criterion.ID] = criterion
	return nil
}

// Update merges the non-nil fields into an existing criterion.
func (r *MemoryRepo) Update(ctx context.Context, criterionID string, update Update) (Criterion, error) {
	if err := ctx.Err(); err != nil {
		return Criterion{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[criterionID]
	if !ok {
		return Criterion{}, ErrNotFound
	}

	merged := current
	if update.Name != nil {
		merged.Name = *update.Name
	}
	if update.Weight != nil {
		merged.Weight = *update.Weight
	}
	if update.Description != nil {
		merged.Description = *update.Description
	}
	if update.IsActive != nil {
		merged.IsActive = *update.IsActive
	}
	if update.SortOrder != nil {
		merged.SortOrder = *update.SortOrder
	}

	if merged.IsActive {
		if sumActiveLocked(r.byID, criterionID)+merged.Weight > 1.0+weightEpsilon {
			return Criterion{}, ErrWeightBudget
		}
	}

	merged.UpdatedAt = time.Now().UTC()
	r.byID[criterionID] = merged
	return merged, nil
}

// Delete removes a criterion.
func (r *MemoryRepo) Delete(ctx context.Context, criterionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[criterionID]; !ok {
		return ErrNotFound
	}
	delete(r.byID, criterionID)
	return nil
}

// GetByID returns a criterion by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, criterionID string) (Criterion, error) {
	if err := ctx.Err(); err != nil {
		return Criterion{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	criterion, ok := r.byID[criterionID]
	if !ok {
		return Criterion{}, ErrNotFound
	}
	return criterion, nil
}

// List returns all criteria in display order.
func (r *MemoryRepo) List(ctx context.Context) ([]Criterion, error) {
	return r.list(ctx, false)
}

// ListActive returns active criteria in display order.
func (r *MemoryRepo) ListActive(ctx context.Context) ([]Criterion, error) {
	return r.list(ctx, true)
}

// SumActiveWeights returns the sum of active weights, optionally excluding one id.
func (r *MemoryRepo) SumActiveWeights(ctx context.Context, excludeID string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sumActiveLocked(r.byID, excludeID), nil
}

func (r *MemoryRepo) list(ctx context.Context, activeOnly bool) ([]Criterion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Criterion, 0, len(r.byID))
	for _, c := range r.byID {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func sumActiveLocked(byID map[string]Criterion, excludeID string) float64 {
	total := 0.0
	for id, c := range byID {
		if !c.IsActive || id == excludeID {
			continue
		}
		total += c.Weight
	}
	return total
}

var _ Repo = (*MemoryRepo)(nil)
