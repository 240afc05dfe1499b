package submissions

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("submission not found")
	ErrInvalidInput = errors.New("invalid submission input")
)

// Repo defines persistence operations for CV submissions.
type Repo interface {
	Create(ctx context.Context, submission Submission) error
	GetByID(ctx context.Context, submissionID string) (Submission, error)
	List(ctx context.Context, limit, offset int) ([]Submission, error)
	// SetProcessed stores the extracted text and flips status to processed.
	SetProcessed(ctx context.Context, submissionID, extractedText string) error
	// SetFailed records the extraction failure.
	SetFailed(ctx context.Context, submissionID, errorMessage string) error
}
