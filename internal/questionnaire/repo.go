package questionnaire

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("questionnaire session not found")
	ErrInvalidInput = errors.New("invalid questionnaire input")
	ErrCompleted    = errors.New("questionnaire session already completed")
)

// Repo defines persistence operations for questionnaire sessions.
type Repo interface {
	Create(ctx context.Context, session Session) error
	GetByID(ctx context.Context, sessionID string) (Session, error)
	ListBySubmission(ctx context.Context, submissionID string) ([]Session, error)
	// Save persists answers, cursor and timestamps for an existing session.
	Save(ctx context.Context, session Session) error
	// ExpiredSessions returns not-completed sessions idle since before cutoff,
	// including sessions whose startedAt is null but whose progress fields
	// have moved off their defaults.
	ExpiredSessions(ctx context.Context, cutoff time.Time) ([]Session, error)
	// Reset restarts a session: question 1, no answers, null activity stamps.
	Reset(ctx context.Context, sessionID string) error
}
