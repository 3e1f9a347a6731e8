package repository

import (
	"errors"
	"testing"
	"time"

	"studium-server/internal/domain"
)

func TestStudyPlanStore_SaveAndGet(t *testing.T) {
	store := NewInMemoryStudyPlanStore()
	plan := &domain.StudyPlan{
		PlanID:      "plan-1",
		SubjectName: "Biología",
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
	if err := store.Save(plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get("plan-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.SubjectName != "Biología" {
		t.Fatalf("unexpected plan: %+v", got)
	}

	// Returned plans are copies.
	got.SubjectName = "mutated"
	again, _ := store.Get("plan-1")
	if again.SubjectName != "Biología" {
		t.Fatal("mutating a returned plan must not affect the store")
	}
}

func TestStudyPlanStore_GetUnknown(t *testing.T) {
	store := NewInMemoryStudyPlanStore()
	if _, err := store.Get("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStudyPlanStore_ListNewestFirst(t *testing.T) {
	store := NewInMemoryStudyPlanStore()
	_ = store.Save(&domain.StudyPlan{PlanID: "old", CreatedAt: "2026-01-01T00:00:00Z"})
	_ = store.Save(&domain.StudyPlan{PlanID: "new", CreatedAt: "2026-08-01T00:00:00Z"})

	plans := store.List()
	if len(plans) != 2 || plans[0].PlanID != "new" {
		t.Fatalf("expected newest first, got %v", plans)
	}
}

func TestStudyPlanStore_Delete(t *testing.T) {
	store := NewInMemoryStudyPlanStore()
	_ = store.Save(&domain.StudyPlan{PlanID: "plan-1"})

	if err := store.Delete("plan-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete("plan-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}
