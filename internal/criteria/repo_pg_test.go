package criteria

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateLocksAndInserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	criterion := Criterion{
		ID:        "crit-1",
		Name:      "Technical Skills",
		Weight:    0.3,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(weightBudgetLockKey).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(weight\\), 0\\)").
		WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0.5))
	mock.ExpectExec("INSERT INTO ai_criteria").
		WithArgs(
			criterion.ID,
			criterion.Name,
			criterion.Weight,
			criterion.Description,
			criterion.IsActive,
			criterion.SortOrder,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.Create(context.Background(), criterion); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateTakesAdvisoryLockOnEmptyActiveSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	criterion := Criterion{ID: "crit-1", Name: "Technical Skills", Weight: 0.8, IsActive: true}

	// With no active rows there is nothing for a row lock to grab, so the
	// advisory lock is the only thing serializing two first inserts. It must
	// be acquired before the sum regardless of the table contents.
	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(weightBudgetLockKey).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(weight\\), 0\\)").
		WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))
	mock.ExpectExec("INSERT INTO ai_criteria").
		WithArgs(
			criterion.ID,
			criterion.Name,
			criterion.Weight,
			criterion.Description,
			criterion.IsActive,
			criterion.SortOrder,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.Create(context.Background(), criterion); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateRejectsBudgetOverflow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(weightBudgetLockKey).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(weight\\), 0\\)").
		WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0.3))
	mock.ExpectRollback()

	criterion := Criterion{ID: "crit-2", Name: "Experience", Weight: 0.8, IsActive: true}
	if err := repo.Create(context.Background(), criterion); !errors.Is(err, ErrWeightBudget) {
		t.Fatalf("expected ErrWeightBudget, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSumActiveWeightsExcludesID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(weight\\), 0\\)").
		WithArgs("crit-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0.6))

	total, err := repo.SumActiveWeights(context.Background(), "crit-1")
	if err != nil {
		t.Fatalf("SumActiveWeights: %v", err)
	}
	if total != 0.6 {
		t.Fatalf("expected 0.6, got %v", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
