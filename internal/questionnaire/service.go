package questionnaire

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/chidung091/hr-scanning-sub001/internal/shared/telemetry"
	"github.com/chidung091/hr-scanning-sub001/internal/submissions"
)

// DefaultTotalQuestions is the questionnaire length when none is configured.
const DefaultTotalQuestions = 10

// Service contains business logic for questionnaire sessions.
type Service struct {
	Repo           Repo
	SubmissionRepo submissions.Repo
	TotalQuestions int
}

func (s *Service) total() int {
	if s.TotalQuestions > 0 {
		return s.TotalQuestions
	}
	return DefaultTotalQuestions
}

// Start creates a session at question 1 for the given submission.
func (s *Service) Start(ctx context.Context, submissionID, language string) (Session, error) {
	if submissionID == "" {
		return Session{}, fmt.Errorf("%w: submissionId is required", ErrInvalidInput)
	}
	if s.SubmissionRepo != nil {
		if _, err := s.SubmissionRepo.GetByID(ctx, submissionID); err != nil {
			return Session{}, fmt.Errorf("%w: unknown submission", ErrInvalidInput)
		}
	}
	if language == "" {
		language = "en"
	}

	now := time.Now().UTC()
	session := Session{
		ID:              uuid.NewString(),
		SubmissionID:    submissionID,
		Answers:         map[string]string{},
		CurrentQuestion: 1,
		Language:        language,
		StartedAt:       &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Repo.Create(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Get returns a session by ID.
func (s *Service) Get(ctx context.Context, sessionID string) (Session, error) {
	if sessionID == "" {
		return Session{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, sessionID)
}

// RecordAnswer merges one answer into the session and advances the cursor.
// Answering the final question completes the session.
func (s *Service) RecordAnswer(ctx context.Context, sessionID string, questionNumber int, answer string) (Session, error) {
	total := s.total()
	if questionNumber < 1 || questionNumber > total {
		return Session{}, fmt.Errorf("%w: questionNumber must be between 1 and %d", ErrInvalidInput, total)
	}
	if answer == "" {
		return Session{}, fmt.Errorf("%w: answer is required", ErrInvalidInput)
	}

	session, err := s.Repo.GetByID(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if session.IsCompleted {
		return Session{}, ErrCompleted
	}

	now := time.Now().UTC()
	if session.Answers == nil {
		session.Answers = map[string]string{}
	}
	session.Answers[strconv.Itoa(questionNumber)] = answer
	session.QuestionsCompleted = len(session.Answers)
	if questionNumber >= session.CurrentQuestion {
		session.CurrentQuestion = questionNumber + 1
		if session.CurrentQuestion > total {
			session.CurrentQuestion = total
		}
	}
	session.LastActivityAt = &now
	if session.StartedAt == nil {
		session.StartedAt = &now
	}
	if questionNumber == total {
		session.IsCompleted = true
		session.CompletedAt = &now
	}
	session.UpdatedAt = now

	if err := s.Repo.Save(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// ExpiredSessions returns sessions idle longer than timeout and not completed.
func (s *Service) ExpiredSessions(ctx context.Context, timeout time.Duration) ([]Session, error) {
	cutoff := time.Now().UTC().Add(-timeout)
	return s.Repo.ExpiredSessions(ctx, cutoff)
}

// ResetExpired restarts every expired session, or only reports them when
// dryRun is set.
func (s *Service) ResetExpired(ctx context.Context, timeout time.Duration, dryRun bool) (CleanupReport, error) {
	expired, err := s.ExpiredSessions(ctx, timeout)
	if err != nil {
		return CleanupReport{}, err
	}

	report := CleanupReport{
		Expired:    len(expired),
		DryRun:     dryRun,
		SessionIDs: make([]string, 0, len(expired)),
	}
	for _, session := range expired {
		report.SessionIDs = append(report.SessionIDs, session.ID)
		if dryRun {
			continue
		}
		if err := s.Repo.Reset(ctx, session.ID); err != nil {
			return report, err
		}
		report.Reset++
	}
	telemetry.Info("questionnaire.cleanup", map[string]any{
		"expired": report.Expired,
		"reset":   report.Reset,
		"dry_run": report.DryRun,
	})
	return report, nil
}
