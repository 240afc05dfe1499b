package evaluations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const evaluationColumns = `id, submission_id, job_id, score, strengths, weaknesses, explanation,
	recommendation, linked_criteria_ids, questionnaire_response_ids, model, tokens_used,
	latency_ms, status, error_message, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, evaluation Evaluation) error {
	strengths, weaknesses, criteriaIDs, responseIDs, err := marshalArrays(evaluation)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO candidate_evaluations
	(id, submission_id, job_id, score, strengths, weaknesses, explanation, recommendation,
	 linked_criteria_ids, questionnaire_response_ids, model, tokens_used, latency_ms,
	 status, error_message, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)`
	_, err = r.DB.ExecContext(ctx, query,
		evaluation.ID,
		evaluation.SubmissionID,
		nullableString(evaluation.JobID),
		evaluation.Score,
		strengths,
		weaknesses,
		evaluation.Explanation,
		nullableString(evaluation.Recommendation),
		criteriaIDs,
		responseIDs,
		evaluation.Model,
		evaluation.TokensUsed,
		evaluation.LatencyMs,
		evaluation.Status,
		nullableString(evaluation.ErrorMessage),
		evaluation.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, evaluationID string) (Evaluation, error) {
	const query = `SELECT ` + evaluationColumns + ` FROM candidate_evaluations WHERE id = $1`
	evaluation, err := scanEvaluation(r.DB.QueryRowContext(ctx, query, evaluationID))
	if errors.Is(err, sql.ErrNoRows) {
		return Evaluation{}, ErrNotFound
	}
	return evaluation, err
}

func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Evaluation, error) {
	const query = `
SELECT ` + evaluationColumns + `
FROM candidate_evaluations
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	return r.queryEvaluations(ctx, query, limit, offset)
}

func (r *PGRepo) ListBySubmission(ctx context.Context, submissionID string) ([]Evaluation, error) {
	const query = `
SELECT ` + evaluationColumns + `
FROM candidate_evaluations
WHERE submission_id = $1
ORDER BY created_at DESC`
	return r.queryEvaluations(ctx, query, submissionID)
}

func (r *PGRepo) Complete(ctx context.Context, evaluation Evaluation) error {
	strengths, weaknesses, criteriaIDs, responseIDs, err := marshalArrays(evaluation)
	if err != nil {
		return err
	}
	const query = `
UPDATE candidate_evaluations
SET score = $2,
    strengths = $3,
    weaknesses = $4,
    explanation = $5,
    recommendation = $6,
    linked_criteria_ids = $7,
    questionnaire_response_ids = $8,
    model = $9,
    tokens_used = $10,
    latency_ms = $11,
    status = 'completed',
    error_message = NULL,
    updated_at = now()
WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query,
		evaluation.ID,
		evaluation.Score,
		strengths,
		weaknesses,
		evaluation.Explanation,
		nullableString(evaluation.Recommendation),
		criteriaIDs,
		responseIDs,
		evaluation.Model,
		evaluation.TokensUsed,
		evaluation.LatencyMs,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *PGRepo) Fail(ctx context.Context, evaluationID, errorMessage string) error {
	const query = `
UPDATE candidate_evaluations
SET status = 'failed',
    error_message = $2,
    updated_at = now()
WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, evaluationID, errorMessage)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *PGRepo) queryEvaluations(ctx context.Context, query string, args ...any) ([]Evaluation, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evaluations []Evaluation
	for rows.Next() {
		evaluation, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, evaluation)
	}
	return evaluations, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(row rowScanner) (Evaluation, error) {
	var (
		evaluation     Evaluation
		jobID          sql.NullString
		recommendation sql.NullString
		errorMessage   sql.NullString
		strengths      []byte
		weaknesses     []byte
		criteriaIDs    []byte
		responseIDs    []byte
	)
	if err := row.Scan(
		&evaluation.ID,
		&evaluation.SubmissionID,
		&jobID,
		&evaluation.Score,
		&strengths,
		&weaknesses,
		&evaluation.Explanation,
		&recommendation,
		&criteriaIDs,
		&responseIDs,
		&evaluation.Model,
		&evaluation.TokensUsed,
		&evaluation.LatencyMs,
		&evaluation.Status,
		&errorMessage,
		&evaluation.CreatedAt,
		&evaluation.UpdatedAt,
	); err != nil {
		return Evaluation{}, err
	}
	evaluation.JobID = jobID.String
	evaluation.Recommendation = recommendation.String
	evaluation.ErrorMessage = errorMessage.String

	var err error
	if evaluation.Strengths, err = unmarshalStrings(strengths); err != nil {
		return Evaluation{}, err
	}
	if evaluation.Weaknesses, err = unmarshalStrings(weaknesses); err != nil {
		return Evaluation{}, err
	}
	if evaluation.LinkedCriteriaIDs, err = unmarshalStrings(criteriaIDs); err != nil {
		return Evaluation{}, err
	}
	if evaluation.QuestionnaireResponseIDs, err = unmarshalStrings(responseIDs); err != nil {
		return Evaluation{}, err
	}
	return evaluation, nil
}

func marshalArrays(evaluation Evaluation) (strengths, weaknesses, criteriaIDs, responseIDs []byte, err error) {
	if strengths, err = marshalStrings(evaluation.Strengths); err != nil {
		return
	}
	if weaknesses, err = marshalStrings(evaluation.Weaknesses); err != nil {
		return
	}
	if criteriaIDs, err = marshalStrings(evaluation.LinkedCriteriaIDs); err != nil {
		return
	}
	responseIDs, err = marshalStrings(evaluation.QuestionnaireResponseIDs)
	return
}

func marshalStrings(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

func unmarshalStrings(raw []byte) ([]string, error) {
	values := []string{}
	if len(raw) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
