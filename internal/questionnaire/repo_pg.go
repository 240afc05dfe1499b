package questionnaire

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const sessionColumns = `id, submission_id, answers, current_question, questions_completed,
	is_completed, language, started_at, completed_at, last_activity_at, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, session Session) error {
	answers, err := marshalAnswers(session.Answers)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO questionnaire_responses
	(id, submission_id, answers, current_question, questions_completed, is_completed,
	 language, started_at, completed_at, last_activity_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`
	_, err = r.DB.ExecContext(ctx, query,
		session.ID,
		session.SubmissionID,
		answers,
		session.CurrentQuestion,
		session.QuestionsCompleted,
		session.IsCompleted,
		session.Language,
		session.StartedAt,
		session.CompletedAt,
		session.LastActivityAt,
		session.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, sessionID string) (Session, error) {
	const query = `SELECT ` + sessionColumns + ` FROM questionnaire_responses WHERE id = $1`
	session, err := scanSession(r.DB.QueryRowContext(ctx, query, sessionID))
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	return session, err
}

func (r *PGRepo) ListBySubmission(ctx context.Context, submissionID string) ([]Session, error) {
	const query = `
SELECT ` + sessionColumns + `
FROM questionnaire_responses
WHERE submission_id = $1
ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, submissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (r *PGRepo) Save(ctx context.Context, session Session) error {
	answers, err := marshalAnswers(session.Answers)
	if err != nil {
		return err
	}
	const query = `
UPDATE questionnaire_responses
SET answers = $2,
    current_question = $3,
    questions_completed = $4,
    is_completed = $5,
    started_at = $6,
    completed_at = $7,
    last_activity_at = $8,
    updated_at = now()
WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query,
		session.ID,
		answers,
		session.CurrentQuestion,
		session.QuestionsCompleted,
		session.IsCompleted,
		session.StartedAt,
		session.CompletedAt,
		session.LastActivityAt,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) ExpiredSessions(ctx context.Context, cutoff time.Time) ([]Session, error) {
	const query = `
SELECT ` + sessionColumns + `
FROM questionnaire_responses
WHERE NOT is_completed
  AND (
	last_activity_at < $1
	OR (last_activity_at IS NULL AND started_at < $1)
	OR (started_at IS NULL AND (current_question > 1 OR questions_completed > 0 OR answers <> '{}'::jsonb))
  )
ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (r *PGRepo) Reset(ctx context.Context, sessionID string) error {
	const query = `
UPDATE questionnaire_responses
SET answers = '{}'::jsonb,
    current_question = 1,
    questions_completed = 0,
    started_at = NULL,
    last_activity_at = NULL,
    updated_at = now()
WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, sessionID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (Session, error) {
	var (
		session Session
		answers []byte
	)
	if err := row.Scan(
		&session.ID,
		&session.SubmissionID,
		&answers,
		&session.CurrentQuestion,
		&session.QuestionsCompleted,
		&session.IsCompleted,
		&session.Language,
		&session.StartedAt,
		&session.CompletedAt,
		&session.LastActivityAt,
		&session.CreatedAt,
		&session.UpdatedAt,
	); err != nil {
		return Session{}, err
	}
	session.Answers = map[string]string{}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &session.Answers); err != nil {
			return Session{}, err
		}
	}
	return session, nil
}

func marshalAnswers(answers map[string]string) ([]byte, error) {
	if answers == nil {
		answers = map[string]string{}
	}
	return json.Marshal(answers)
}
