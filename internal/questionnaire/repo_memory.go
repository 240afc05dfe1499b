package questionnaire

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used in tests and local development.
type MemoryRepo struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{sessions: map[string]Session{}}
}

func (r *MemoryRepo) Create(_ context.Context, session Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *MemoryRepo) GetByID(_ context.Context, sessionID string) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return Session{}, ErrNotFound
	}
	return cloneSession(session), nil
}

func (r *MemoryRepo) ListBySubmission(_ context.Context, submissionID string) ([]Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []Session
	for _, session := range r.sessions {
		if session.SubmissionID == submissionID {
			matched = append(matched, cloneSession(session))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	return matched, nil
}

func (r *MemoryRepo) Save(_ context.Context, session Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; !ok {
		return ErrNotFound
	}
	session.UpdatedAt = time.Now().UTC()
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *MemoryRepo) ExpiredSessions(_ context.Context, cutoff time.Time) ([]Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var expired []Session
	for _, session := range r.sessions {
		if sessionExpired(session, cutoff) {
			expired = append(expired, cloneSession(session))
		}
	}
	return expired, nil
}

func (r *MemoryRepo) Reset(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	session.Answers = map[string]string{}
	session.CurrentQuestion = 1
	session.QuestionsCompleted = 0
	session.StartedAt = nil
	session.LastActivityAt = nil
	session.UpdatedAt = time.Now().UTC()
	r.sessions[sessionID] = session
	return nil
}

func sessionExpired(session Session, cutoff time.Time) bool {
	if session.IsCompleted {
		return false
	}
	if session.LastActivityAt != nil {
		return session.LastActivityAt.Before(cutoff)
	}
	if session.StartedAt != nil {
		return session.StartedAt.Before(cutoff)
	}
	return session.CurrentQuestion > 1 || session.QuestionsCompleted > 0 || len(session.Answers) > 0
}

func cloneSession(session Session) Session {
	answers := make(map[string]string, len(session.Answers))
	for k, v := range session.Answers {
		answers[k] = v
	}
	session.Answers = answers
	return session
}
