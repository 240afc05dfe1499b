package admins

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const adminColumns = `id, username, password_hash, is_active, last_login_at, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, admin Admin) error {
	const query = `
INSERT INTO admin_users (id, username, password_hash, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)`
	_, err := r.DB.ExecContext(ctx, query,
		admin.ID,
		admin.Username,
		admin.PasswordHash,
		admin.IsActive,
		admin.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrUsernameTaken
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, adminID string) (Admin, error) {
	const query = `SELECT ` + adminColumns + ` FROM admin_users WHERE id = $1`
	return r.getOne(ctx, query, adminID)
}

func (r *PGRepo) GetByUsername(ctx context.Context, username string) (Admin, error) {
	const query = `SELECT ` + adminColumns + ` FROM admin_users WHERE username = $1`
	return r.getOne(ctx, query, username)
}

func (r *PGRepo) List(ctx context.Context) ([]Admin, error) {
	const query = `SELECT ` + adminColumns + ` FROM admin_users ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Admin
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, admin)
	}
	return list, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, adminID string, update Update) (Admin, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Admin{}, err
	}
	defer tx.Rollback()

	const selectQuery = `SELECT ` + adminColumns + ` FROM admin_users WHERE id = $1 FOR UPDATE`
	current, err := scanAdmin(tx.QueryRowContext(ctx, selectQuery, adminID))
	if errors.Is(err, sql.ErrNoRows) {
		return Admin{}, ErrNotFound
	}
	if err != nil {
		return Admin{}, err
	}

	merged := current
	if update.Username != nil {
		merged.Username = *update.Username
	}
	if update.PasswordHash != nil {
		merged.PasswordHash = *update.PasswordHash
	}
	if update.IsActive != nil {
		merged.IsActive = *update.IsActive
	}

	const updateQuery = `
UPDATE admin_users
SET username = $2, password_hash = $3, is_active = $4, updated_at = now()
WHERE id = $1`
	if _, err := tx.ExecContext(ctx, updateQuery,
		adminID,
		merged.Username,
		merged.PasswordHash,
		merged.IsActive,
	); err != nil {
		if isUniqueViolation(err) {
			return Admin{}, ErrUsernameTaken
		}
		return Admin{}, err
	}
	if err := tx.Commit(); err != nil {
		return Admin{}, err
	}
	return merged, nil
}

func (r *PGRepo) Delete(ctx context.Context, adminID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM admin_users WHERE id = $1`, adminID)
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

func (r *PGRepo) UpdateLastLogin(ctx context.Context, adminID string) error {
	const query = `UPDATE admin_users SET last_login_at = now(), updated_at = now() WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, adminID)
	return err
}

func (r *PGRepo) getOne(ctx context.Context, query string, arg any) (Admin, error) {
	admin, err := scanAdmin(r.DB.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return Admin{}, ErrNotFound
	}
	return admin, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdmin(row rowScanner) (Admin, error) {
	var admin Admin
	if err := row.Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.IsActive,
		&admin.LastLoginAt,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	); err != nil {
		return Admin{}, err
	}
	return admin, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
