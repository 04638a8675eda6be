package app_test

import (
	"context"
	"testing"

	"ecoguardian/internal/app"
	"ecoguardian/internal/domain"
)

func TestGoalCreate_Valid(t *testing.T) {
	var stored *domain.Goal
	repo := &mockGoalRepo{
		createFn: func(_ context.Context, g domain.Goal) error {
			stored = &g
			return nil
		},
	}
	svc := app.NewGoalService(repo)

	goal, err := svc.Create(context.Background(), "u1", "energy", 40, "month")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal.ID == "" {
		t.Error("expected generated ID")
	}
	if goal.Category != domain.CategoryEnergy || goal.TargetAmount != 40 || goal.Period != "month" {
		t.Errorf("unexpected goal: %+v", goal)
	}
	if goal.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if stored == nil || stored.ID != goal.ID {
		t.Error("goal not persisted")
	}
}

func TestGoalCreate_Invalid(t *testing.T) {
	svc := app.NewGoalService(&mockGoalRepo{})
	cases := []struct {
		name     string
		category string
		target   float64
		period   string
	}{
		{"unknown category", "aviation", 10, "week"},
		{"zero target", "food", 0, "week"},
		{"negative target", "food", -5, "week"},
		{"bad period", "food", 10, "year"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), "u1", tc.category, tc.target, tc.period); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGoalActive_NilWhenNone(t *testing.T) {
	svc := app.NewGoalService(&mockGoalRepo{})
	goal, err := svc.Active(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal != nil {
		t.Errorf("expected nil goal, got %+v", goal)
	}
}
