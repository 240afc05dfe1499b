package questionnaire

import (
	"context"
	"errors"
	"testing"
	"time"
)

func seedSession(t *testing.T, repo *MemoryRepo, session Session) {
	t.Helper()
	if session.Answers == nil {
		session.Answers = map[string]string{}
	}
	if err := repo.Create(context.Background(), session); err != nil {
		t.Fatalf("seed session %s: %v", session.ID, err)
	}
}

func TestStartCreatesSessionAtQuestionOne(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), TotalQuestions: 5}

	session, err := svc.Start(context.Background(), "sub-1", "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if session.CurrentQuestion != 1 {
		t.Fatalf("expected currentQuestion 1, got %d", session.CurrentQuestion)
	}
	if session.StartedAt == nil {
		t.Fatal("expected startedAt to be stamped")
	}
	if session.Language != "en" {
		t.Fatalf("expected default language en, got %q", session.Language)
	}
	if session.IsCompleted {
		t.Fatal("new session must not be completed")
	}
}

func TestRecordAnswerAdvancesAndCompletes(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), TotalQuestions: 3}

	session, err := svc.Start(context.Background(), "sub-1", "en")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	session, err = svc.RecordAnswer(context.Background(), session.ID, 1, "five years of Go")
	if err != nil {
		t.Fatalf("RecordAnswer 1: %v", err)
	}
	if session.CurrentQuestion != 2 || session.QuestionsCompleted != 1 {
		t.Fatalf("unexpected cursor after Q1: %+v", session)
	}
	if session.LastActivityAt == nil {
		t.Fatal("expected lastActivityAt to be stamped")
	}

	if _, err = svc.RecordAnswer(context.Background(), session.ID, 2, "remote"); err != nil {
		t.Fatalf("RecordAnswer 2: %v", err)
	}
	session, err = svc.RecordAnswer(context.Background(), session.ID, 3, "asap")
	if err != nil {
		t.Fatalf("RecordAnswer 3: %v", err)
	}
	if !session.IsCompleted || session.CompletedAt == nil {
		t.Fatalf("expected session completed after final answer: %+v", session)
	}
	if session.QuestionsCompleted != 3 {
		t.Fatalf("expected 3 answers recorded, got %d", session.QuestionsCompleted)
	}

	if _, err := svc.RecordAnswer(context.Background(), session.ID, 1, "late edit"); !errors.Is(err, ErrCompleted) {
		t.Fatalf("expected ErrCompleted on completed session, got %v", err)
	}
}

func TestRecordAnswerRejectsOutOfRangeQuestion(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), TotalQuestions: 3}
	session, err := svc.Start(context.Background(), "sub-1", "en")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.RecordAnswer(context.Background(), session.ID, 0, "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for question 0, got %v", err)
	}
	if _, err := svc.RecordAnswer(context.Background(), session.ID, 4, "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for question past the end, got %v", err)
	}
}

func TestExpiredSessionsSelection(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo}
	now := time.Now().UTC()

	stale := now.Add(-31 * time.Minute)
	fresh := now.Add(-29 * time.Minute)

	seedSession(t, repo, Session{ID: "idle-31m", SubmissionID: "sub-1", CurrentQuestion: 3, LastActivityAt: &stale, StartedAt: &stale, CreatedAt: stale})
	seedSession(t, repo, Session{ID: "idle-29m", SubmissionID: "sub-2", CurrentQuestion: 2, LastActivityAt: &fresh, StartedAt: &fresh, CreatedAt: fresh})
	seedSession(t, repo, Session{ID: "done", SubmissionID: "sub-3", CurrentQuestion: 10, IsCompleted: true, LastActivityAt: &stale, StartedAt: &stale, CreatedAt: stale})
	seedSession(t, repo, Session{ID: "never-active", SubmissionID: "sub-4", CurrentQuestion: 1, StartedAt: &stale, CreatedAt: stale})
	seedSession(t, repo, Session{ID: "no-start-progress", SubmissionID: "sub-5", CurrentQuestion: 4, QuestionsCompleted: 3, CreatedAt: now})

	expired, err := svc.ExpiredSessions(context.Background(), 30*time.Minute)
	if err != nil {
		t.Fatalf("ExpiredSessions: %v", err)
	}

	got := map[string]bool{}
	for _, session := range expired {
		got[session.ID] = true
	}
	for _, want := range []string{"idle-31m", "never-active", "no-start-progress"} {
		if !got[want] {
			t.Fatalf("expected %s in expired set, got %v", want, got)
		}
	}
	if got["idle-29m"] {
		t.Fatal("session active 29 minutes ago must not be expired")
	}
	if got["done"] {
		t.Fatal("completed session must never be expired")
	}
}

func TestResetExpiredDryRunLeavesSessions(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo}
	stale := time.Now().UTC().Add(-2 * time.Hour)

	seedSession(t, repo, Session{
		ID:                 "s-1",
		SubmissionID:       "sub-1",
		CurrentQuestion:    5,
		QuestionsCompleted: 4,
		Answers:            map[string]string{"1": "a", "2": "b"},
		StartedAt:          &stale,
		LastActivityAt:     &stale,
		CreatedAt:          stale,
	})

	report, err := svc.ResetExpired(context.Background(), 30*time.Minute, true)
	if err != nil {
		t.Fatalf("ResetExpired dry run: %v", err)
	}
	if report.Expired != 1 || report.Reset != 0 || !report.DryRun {
		t.Fatalf("unexpected dry-run report: %+v", report)
	}

	session, err := repo.GetByID(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if session.CurrentQuestion != 5 || len(session.Answers) != 2 {
		t.Fatalf("dry run must not mutate the session: %+v", session)
	}
}

func TestResetExpiredRestartsSessions(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo}
	stale := time.Now().UTC().Add(-2 * time.Hour)

	seedSession(t, repo, Session{
		ID:                 "s-1",
		SubmissionID:       "sub-1",
		CurrentQuestion:    5,
		QuestionsCompleted: 4,
		Answers:            map[string]string{"1": "a"},
		StartedAt:          &stale,
		LastActivityAt:     &stale,
		CreatedAt:          stale,
	})

	report, err := svc.ResetExpired(context.Background(), 30*time.Minute, false)
	if err != nil {
		t.Fatalf("ResetExpired: %v", err)
	}
	if report.Reset != 1 {
		t.Fatalf("expected one reset, got %+v", report)
	}

	session, err := repo.GetByID(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if session.CurrentQuestion != 1 || session.QuestionsCompleted != 0 || len(session.Answers) != 0 {
		t.Fatalf("expected full restart, got %+v", session)
	}
	if session.StartedAt != nil || session.LastActivityAt != nil {
		t.Fatalf("expected null activity stamps after reset, got %+v", session)
	}
}
