package evaluations

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("evaluation not found")
	ErrInvalidInput = errors.New("invalid evaluation input")
)

// Repo defines persistence operations for candidate evaluations.
type Repo interface {
	Create(ctx context.Context, evaluation Evaluation) error
	GetByID(ctx context.Context, evaluationID string) (Evaluation, error)
	List(ctx context.Context, limit, offset int) ([]Evaluation, error)
	ListBySubmission(ctx context.Context, submissionID string) ([]Evaluation, error)
	// Complete stores the scoring payload and flips status to completed.
	Complete(ctx context.Context, evaluation Evaluation) error
	// Fail records the failure reason, leaving payload fields empty.
	Fail(ctx context.Context, evaluationID, errorMessage string) error
}
