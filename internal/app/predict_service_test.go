package app_test

import (
	"context"
	"testing"
	"time"

	"ecoguardian/internal/ai"
	"ecoguardian/internal/app"
	"ecoguardian/internal/domain"
)

type stubGenerator struct {
	input  ai.PredictionInput
	result ai.PredictionResult
	err    error
	called bool
}

func (s *stubGenerator) PredictResources(_ context.Context, input ai.PredictionInput) (ai.PredictionResult, error) {
	s.called = true
	s.input = input
	return s.result, s.err
}

func TestPredict_EmptyHistory(t *testing.T) {
	gen := &stubGenerator{}
	svc := app.NewPredictionService(&mockEntryRepo{}, gen)

	result, err := svc.Predict(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.called {
		t.Error("generator must not be consulted for an empty history")
	}
	if len(result.Insights) != 1 || result.Insights[0] != "Start tracking your carbon footprint to receive AI-powered predictions" {
		t.Errorf("unexpected insights: %v", result.Insights)
	}
	if len(result.Recommendations) != 1 || result.Recommendations[0] != "Add your first carbon entry to get personalized recommendations" {
		t.Errorf("unexpected recommendations: %v", result.Recommendations)
	}
	for name, p := range map[string]ai.ResourcePrediction{
		"energy": result.EnergyPrediction,
		"water":  result.WaterPrediction,
		"carbon": result.CarbonPrediction,
	} {
		if p.Value != 0 || p.Trend != ai.TrendStable || p.Confidence != 0 {
			t.Errorf("%s: expected zero prediction, got %+v", name, p)
		}
	}
}

func TestPredict_InputAggregation(t *testing.T) {
	now := time.Now()
	entries := []domain.Entry{
		{Category: domain.CategoryTransportation, Amount: 10, Date: now.Add(-1 * time.Hour)},
		{Category: domain.CategoryFood, Amount: 6, Date: now.Add(-2 * 24 * time.Hour)},
		{Category: domain.CategoryFood, Amount: 8, Date: now.Add(-10 * 24 * time.Hour)},
	}
	repo := &mockEntryRepo{
		listFn: func(_ context.Context, _ string) ([]domain.Entry, error) {
			return entries, nil
		},
	}
	gen := &stubGenerator{}
	svc := app.NewPredictionService(repo, gen)

	if _, err := svc.Predict(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gen.called {
		t.Fatal("generator not consulted")
	}
	in := gen.input
	if in.DailyAverage != 8 { // 24 total over 3 entries
		t.Errorf("dailyAverage: got %v, want 8", in.DailyAverage)
	}
	if in.WeeklyTotal != 16 { // the -10d entry is outside the window
		t.Errorf("weeklyTotal: got %v, want 16", in.WeeklyTotal)
	}
	if in.TopCategory != domain.CategoryFood {
		t.Errorf("topCategory: got %v, want food", in.TopCategory)
	}
	if in.CategoryBreakdown[domain.CategoryTransportation] != 10 || in.CategoryBreakdown[domain.CategoryFood] != 14 {
		t.Errorf("unexpected breakdown: %v", in.CategoryBreakdown)
	}
}

func TestPredict_TopCategoryTieBreak(t *testing.T) {
	now := time.Now()
	repo := &mockEntryRepo{
		listFn: func(_ context.Context, _ string) ([]domain.Entry, error) {
			return []domain.Entry{
				{Category: domain.CategoryShopping, Amount: 5, Date: now},
				{Category: domain.CategoryEnergy, Amount: 5, Date: now},
			}, nil
		},
	}
	gen := &stubGenerator{}
	svc := app.NewPredictionService(repo, gen)

	if _, err := svc.Predict(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Energy precedes shopping in the canonical category order.
	if gen.input.TopCategory != domain.CategoryEnergy {
		t.Errorf("topCategory: got %v, want energy", gen.input.TopCategory)
	}
}
