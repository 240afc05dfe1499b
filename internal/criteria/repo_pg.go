package criteria

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const criterionColumns = `id, name, weight, description, is_active, sort_order, created_at, updated_at`

// Create inserts a new criterion. The active-weight budget is re-checked inside
// the transaction under an advisory lock, so two concurrent creates cannot both
// slip under the 1.0 cap.
func (r *PGRepo) Create(ctx context.Context, criterion Criterion) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if criterion.IsActive {
		total, err := lockAndSumActive(ctx, tx, "")
		if err != nil {
			return err
		}
		if total+criterion.Weight > 1.0+weightEpsilon {
			return ErrWeightBudget
		}
	}

	const query = `
INSERT INTO ai_criteria (id, name, weight, description, is_active, sort_order, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
	if _, err := tx.ExecContext(ctx, query,
		criterion.ID,
		criterion.Name,
		criterion.Weight,
		criterion.Description,
		criterion.IsActive,
		criterion.SortOrder,
		criterion.CreatedAt,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// Update merges the non-nil fields into an existing criterion under the same
// transactional budget check as Create.
func (r *PGRepo) Update(ctx context.Context, criterionID string, update Update) (Criterion, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Criterion{}, err
	}
	defer tx.Rollback()

	current, err := getForUpdate(ctx, tx, criterionID)
	if err != nil {
		return Criterion{}, err
	}

	merged := current
	if update.Name != nil {
		merged.Name = *update.Name
	}
	if update.Weight != nil {
		merged.Weight = *update.Weight
	}
	if update.Description != nil {
		merged.Description = *update.Description
	}
	if update.IsActive != nil {
		merged.IsActive = *update.IsActive
	}
	if update.SortOrder != nil {
		merged.SortOrder = *update.SortOrder
	}

	if merged.IsActive {
		total, err := lockAndSumActive(ctx, tx, criterionID)
		if err != nil {
			return Criterion{}, err
		}
		if total+merged.Weight > 1.0+weightEpsilon {
			return Criterion{}, ErrWeightBudget
		}
	}

	const query = `
UPDATE ai_criteria
SET name = $1, weight = $2, description = $3, is_active = $4, sort_order = $5, updated_at = now()
WHERE id = $6`
	res, err := tx.ExecContext(ctx, query,
		merged.Name,
		merged.Weight,
		merged.Description,
		merged.IsActive,
		merged.SortOrder,
		criterionID,
	)
	if err != nil {
		return Criterion{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Criterion{}, ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return Criterion{}, err
	}
	return merged, nil
}

// Delete hard-deletes a criterion. Historical evaluations keep whatever
// criteria ids they were linked to at scoring time.
func (r *PGRepo) Delete(ctx context.Context, criterionID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM ai_criteria WHERE id = $1`, criterionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns a criterion by ID.
func (r *PGRepo) GetByID(ctx context.Context, criterionID string) (Criterion, error) {
	const query = `SELECT ` + criterionColumns + ` FROM ai_criteria WHERE id = $1 LIMIT 1`
	var c Criterion
	err := r.DB.QueryRowContext(ctx, query, criterionID).Scan(
		&c.ID, &c.Name, &c.Weight, &c.Description, &c.IsActive, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Criterion{}, ErrNotFound
		}
		return Criterion{}, err
	}
	return c, nil
}

// List returns every criterion ordered like ListActive.
func (r *PGRepo) List(ctx context.Context) ([]Criterion, error) {
	const query = `
SELECT ` + criterionColumns + `
FROM ai_criteria
ORDER BY sort_order ASC, created_at DESC`
	return r.queryCriteria(ctx, query)
}

// ListActive returns active criteria ordered by sort order ascending, ties
// broken by creation time descending. No pagination.
func (r *PGRepo) ListActive(ctx context.Context) ([]Criterion, error) {
	const query = `
SELECT ` + criterionColumns + `
FROM ai_criteria
WHERE is_active = true
ORDER BY sort_order ASC, created_at DESC`
	return r.queryCriteria(ctx, query)
}

// SumActiveWeights returns the sum of active weights, optionally excluding one id.
func (r *PGRepo) SumActiveWeights(ctx context.Context, excludeID string) (float64, error) {
	const query = `
SELECT COALESCE(SUM(weight), 0)
FROM ai_criteria
WHERE is_active = true AND ($1 = '' OR id::text <> $1)`
	var total float64
	if err := r.DB.QueryRowContext(ctx, query, excludeID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PGRepo) queryCriteria(ctx context.Context, query string) ([]Criterion, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Criterion
	for rows.Next() {
		var c Criterion
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Weight, &c.Description, &c.IsActive, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func getForUpdate(ctx context.Context, tx *sql.Tx, criterionID string) (Criterion, error) {
	const query = `SELECT ` + criterionColumns + ` FROM ai_criteria WHERE id = $1 FOR UPDATE`
	var c Criterion
	err := tx.QueryRowContext(ctx, query, criterionID).Scan(
		&c.ID, &c.Name, &c.Weight, &c.Description, &c.IsActive, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Criterion{}, ErrNotFound
		}
		return Criterion{}, err
	}
	return c, nil
}

// weightBudgetLockKey serializes budget checks across sessions. Row locks are
// not enough here: with no active rows there is nothing to lock, and two
// concurrent inserts would each sum zero and commit past the cap.
const weightBudgetLockKey int64 = 824400417

func lockAndSumActive(ctx context.Context, tx *sql.Tx, excludeID string) (float64, error) {
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, weightBudgetLockKey); err != nil {
		return 0, err
	}
	const query = `
SELECT COALESCE(SUM(weight), 0)
FROM ai_criteria
WHERE is_active = true AND ($1 = '' OR id::text <> $1)`
	var total float64
	if err := tx.QueryRowContext(ctx, query, excludeID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

var _ Repo = (*PGRepo)(nil)
