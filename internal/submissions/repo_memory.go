package submissions

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores submissions in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Submission
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Submission)}
}

// Create stores the submission.
func (r *MemoryRepo) Create(ctx context.Context, submission Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[submission.ID] = submission
	return nil
}

// GetByID returns a submission by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, submissionID string) (Submission, error) {
	if err := ctx.Err(); err != nil {
		return Submission{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.byID[submissionID]
	if !ok {
		return Submission{}, ErrNotFound
	}
	return sub, nil
}

// List returns submissions newest-first with limit/offset.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	out := make([]Submission, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []Submission{}, nil
	}
	end := len(out)
	if offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// SetProcessed stores the extracted text and flips status to processed.
func (r *MemoryRepo) SetProcessed(ctx context.Context, submissionID, extractedText string) error {
	return r.mutate(ctx, submissionID, func(s *Submission) {
		s.ExtractedText = extractedText
		s.Status = StatusProcessed
		s.ErrorMessage = ""
	})
}

// SetFailed records the extraction failure.
func (r *MemoryRepo) SetFailed(ctx context.Context, submissionID, errorMessage string) error {
	return r.mutate(ctx, submissionID, func(s *Submission) {
		s.Status = StatusFailed
		s.ErrorMessage = errorMessage
	})
}

func (r *MemoryRepo) mutate(ctx context.Context, submissionID string, fn func(*Submission)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.byID[submissionID]
	if !ok {
		return ErrNotFound
	}
	fn(&sub)
	sub.UpdatedAt = time.Now().UTC()
	r.byID[submissionID] = sub
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
