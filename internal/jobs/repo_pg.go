package jobs

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const jobColumns = `id, title, headcount, working_hours, working_days, requirements, nice_to_have, is_active, sort_order, created_at, updated_at`

// Create inserts a new job.
func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (id, title, headcount, working_hours, working_days, requirements, nice_to_have, is_active, sort_order, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`
	_, err := r.DB.ExecContext(ctx, query,
		job.ID,
		job.Title,
		job.Headcount,
		job.WorkingHours,
		job.WorkingDays,
		job.Requirements,
		job.NiceToHave,
		job.IsActive,
		job.SortOrder,
		job.CreatedAt,
	)
	return err
}

// Update merges the non-nil fields into an existing job.
func (r *PGRepo) Update(ctx context.Context, jobID string, update Update) (Job, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Job{}, err
	}
	defer tx.Rollback()

	const selectQuery = `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 FOR UPDATE`
	current, err := scanJob(tx.QueryRowContext(ctx, selectQuery, jobID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}

	merged := mergeJob(current, update)

	const updateQuery = `
UPDATE jobs
SET title = $1, headcount = $2, working_hours = $3, working_days = $4,
    requirements = $5, nice_to_have = $6, is_active = $7, sort_order = $8, updated_at = now()
WHERE id = $9`
	if _, err := tx.ExecContext(ctx, updateQuery,
		merged.Title,
		merged.Headcount,
		merged.WorkingHours,
		merged.WorkingDays,
		merged.Requirements,
		merged.NiceToHave,
		merged.IsActive,
		merged.SortOrder,
		jobID,
	); err != nil {
		return Job{}, err
	}
	if err := tx.Commit(); err != nil {
		return Job{}, err
	}
	return merged, nil
}

// Delete hard-deletes a job. Submissions that referenced it keep a null job id.
func (r *PGRepo) Delete(ctx context.Context, jobID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns a job by ID.
func (r *PGRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	const query = `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 LIMIT 1`
	job, err := scanJob(r.DB.QueryRowContext(ctx, query, jobID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

// List returns jobs in display order, optionally active only.
func (r *PGRepo) List(ctx context.Context, activeOnly bool) ([]Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY sort_order ASC, created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var j Job
	err := row.Scan(
		&j.ID,
		&j.Title,
		&j.Headcount,
		&j.WorkingHours,
		&j.WorkingDays,
		&j.Requirements,
		&j.NiceToHave,
		&j.IsActive,
		&j.SortOrder,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	return j, err
}

func mergeJob(current Job, update Update) Job {
	merged := current
	if update.Title != nil {
		merged.Title = *update.Title
	}
	if update.Headcount != nil {
		merged.Headcount = *update.Headcount
	}
	if update.WorkingHours != nil {
		merged.WorkingHours = *update.WorkingHours
	}
	if update.WorkingDays != nil {
		merged.WorkingDays = *update.WorkingDays
	}
	if update.Requirements != nil {
		merged.Requirements = *update.Requirements
	}
	if update.NiceToHave != nil {
		merged.NiceToHave = *update.NiceToHave
	}
	if update.IsActive != nil {
		merged.IsActive = *update.IsActive
	}
	if update.SortOrder != nil {
		merged.SortOrder = *update.SortOrder
	}
	return merged
}

var _ Repo = (*PGRepo)(nil)
