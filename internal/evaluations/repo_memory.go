package evaluations

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used in tests and local development.
type MemoryRepo struct {
	mu          sync.Mutex
	evaluations map[string]Evaluation
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{evaluations: map[string]Evaluation{}}
}

func (r *MemoryRepo) Create(_ context.Context, evaluation Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evaluations[evaluation.ID] = evaluation
	return nil
}

func (r *MemoryRepo) GetByID(_ context.Context, evaluationID string) (Evaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	evaluation, ok := r.evaluations[evaluationID]
	if !ok {
		return Evaluation{}, ErrNotFound
	}
	return evaluation, nil
}

func (r *MemoryRepo) List(_ context.Context, limit, offset int) ([]Evaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]Evaluation, 0, len(r.evaluations))
	for _, evaluation := range r.evaluations {
		all = append(all, evaluation)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *MemoryRepo) ListBySubmission(_ context.Context, submissionID string) ([]Evaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []Evaluation
	for _, evaluation := range r.evaluations {
		if evaluation.SubmissionID == submissionID {
			matched = append(matched, evaluation)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return matched, nil
}

func (r *MemoryRepo) Complete(_ context.Context, evaluation Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.evaluations[evaluation.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Score = evaluation.Score
	stored.Strengths = evaluation.Strengths
	stored.Weaknesses = evaluation.Weaknesses
	stored.Explanation = evaluation.Explanation
	stored.Recommendation = evaluation.Recommendation
	stored.LinkedCriteriaIDs = evaluation.LinkedCriteriaIDs
	stored.QuestionnaireResponseIDs = evaluation.QuestionnaireResponseIDs
	stored.Model = evaluation.Model
	stored.TokensUsed = evaluation.TokensUsed
	stored.LatencyMs = evaluation.LatencyMs
	stored.Status = StatusCompleted
	stored.ErrorMessage = ""
	stored.UpdatedAt = time.Now().UTC()
	r.evaluations[evaluation.ID] = stored
	return nil
}

func (r *MemoryRepo) Fail(_ context.Context, evaluationID, errorMessage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.evaluations[evaluationID]
	if !ok {
		return ErrNotFound
	}
	stored.Status = StatusFailed
	stored.ErrorMessage = errorMessage
	stored.UpdatedAt = time.Now().UTC()
	r.evaluations[evaluationID] = stored
	return nil
}
