package submissions

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const submissionColumns = `id, job_id, file_name, storage_key, size_bytes, mime_type, applicant_name, applicant_email, extracted_text, status, error_message, created_at, updated_at`

// Create inserts a new submission.
func (r *PGRepo) Create(ctx context.Context, submission Submission) error {
	const query = `
INSERT INTO cv_submissions (id, job_id, file_name, storage_key, size_bytes, mime_type, applicant_name, applicant_email, extracted_text, status, error_message, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)`
	_, err := r.DB.ExecContext(ctx, query,
		submission.ID,
		nullableString(submission.JobID),
		submission.FileName,
		submission.StorageKey,
		submission.SizeBytes,
		submission.MimeType,
		submission.ApplicantName,
		submission.ApplicantEmail,
		nullableString(submission.ExtractedText),
		submission.Status,
		nullableString(submission.ErrorMessage),
		submission.CreatedAt,
	)
	return err
}

// GetByID returns a submission by ID.
func (r *PGRepo) GetByID(ctx context.Context, submissionID string) (Submission, error) {
	const query = `SELECT ` + submissionColumns + ` FROM cv_submissions WHERE id = $1 LIMIT 1`
	sub, err := scanSubmission(r.DB.QueryRowContext(ctx, query, submissionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Submission{}, ErrNotFound
		}
		return Submission{}, err
	}
	return sub, nil
}

// List returns submissions newest-first with limit/offset.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Submission, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
SELECT ` + submissionColumns + `
FROM cv_submissions
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// SetProcessed stores the extracted text and flips status to processed.
func (r *PGRepo) SetProcessed(ctx context.Context, submissionID, extractedText string) error {
	const query = `
UPDATE cv_submissions
SET extracted_text = $1, status = $2, error_message = NULL, updated_at = now()
WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, extractedText, StatusProcessed, submissionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetFailed records the extraction failure.
func (r *PGRepo) SetFailed(ctx context.Context, submissionID, errorMessage string) error {
	const query = `
UPDATE cv_submissions
SET status = $1, error_message = $2, updated_at = now()
WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, StatusFailed, errorMessage, submissionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (Submission, error) {
	var s Submission
	var jobID sql.NullString
	var extractedText sql.NullString
	var errorMessage sql.NullString
	err := row.Scan(
		&s.ID,
		&jobID,
		&s.FileName,
		&s.StorageKey,
		&s.SizeBytes,
		&s.MimeType,
		&s.ApplicantName,
		&s.ApplicantEmail,
		&extractedText,
		&s.Status,
		&errorMessage,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return Submission{}, err
	}
	if jobID.Valid {
		s.JobID = jobID.String
	}
	if extractedText.Valid {
		s.ExtractedText = extractedText.String
	}
	if errorMessage.Valid {
		s.ErrorMessage = errorMessage.String
	}
	return s, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
