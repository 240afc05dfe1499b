package criteria

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	if _, err := svc.Create(context.Background(), "  ", 0.5, "", 0, true); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "Technical Skills", 1.2, "", 0, true); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for weight > 1, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "Technical Skills", -0.1, "", 0, true); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative weight, got %v", err)
	}
}

func TestCreateEnforcesWeightBudget(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	first, err := svc.Create(context.Background(), "Technical Skills", 0.3, "", 0, true)
	if err != nil {
		t.Fatalf("create first criterion: %v", err)
	}
	if !first.IsActive {
		t.Fatal("expected created criterion to be active")
	}

	if _, err := svc.Create(context.Background(), "Experience", 0.8, "", 1, true); !errors.Is(err, ErrWeightBudget) {
		t.Fatalf("expected ErrWeightBudget for 0.3+0.8, got %v", err)
	}

	// An inactive criterion does not consume budget.
	if _, err := svc.Create(context.Background(), "Experience", 0.8, "", 1, false); err != nil {
		t.Fatalf("create inactive criterion: %v", err)
	}
	if _, err := svc.Create(context.Background(), "Communication", 0.7, "", 2, true); err != nil {
		t.Fatalf("create criterion filling the budget exactly: %v", err)
	}
}

func TestValidateWeights(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	tech, err := svc.Create(context.Background(), "Technical Skills", 0.3, "", 0, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), "Experience", 0.5, "", 1, true); err != nil {
		t.Fatalf("create: %v", err)
	}

	report, err := svc.ValidateWeights(context.Background(), "")
	if err != nil {
		t.Fatalf("ValidateWeights: %v", err)
	}
	if !report.IsValid {
		t.Fatalf("expected valid report, got %+v", report)
	}
	if report.CurrentTotal != 0.8 {
		t.Fatalf("expected currentTotal 0.8, got %v", report.CurrentTotal)
	}
	if report.Remaining != 0.2 {
		t.Fatalf("expected remaining 0.2, got %v", report.Remaining)
	}

	excluded, err := svc.ValidateWeights(context.Background(), tech.ID)
	if err != nil {
		t.Fatalf("ValidateWeights excluding: %v", err)
	}
	if excluded.CurrentTotal != 0.5 || excluded.Remaining != 0.5 {
		t.Fatalf("expected 0.5/0.5 when excluding one criterion, got %+v", excluded)
	}
}

func TestListActiveOrdering(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo}
	base := time.Now().UTC()

	seed := []Criterion{
		{ID: "c-old", Name: "Old", Weight: 0.1, IsActive: true, SortOrder: 1, CreatedAt: base.Add(-2 * time.Hour)},
		{ID: "c-new", Name: "New", Weight: 0.1, IsActive: true, SortOrder: 1, CreatedAt: base},
		{ID: "c-first", Name: "First", Weight: 0.1, IsActive: true, SortOrder: 0, CreatedAt: base.Add(-time.Hour)},
		{ID: "c-off", Name: "Inactive", Weight: 0.1, IsActive: false, SortOrder: 0, CreatedAt: base},
	}
	for _, criterion := range seed {
		if err := repo.Create(context.Background(), criterion); err != nil {
			t.Fatalf("seed %s: %v", criterion.ID, err)
		}
	}

	active, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	want := []string{"c-first", "c-new", "c-old"}
	if len(active) != len(want) {
		t.Fatalf("expected %d active criteria, got %d", len(want), len(active))
	}
	for i, id := range want {
		if active[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, active[i].ID)
		}
	}
}
