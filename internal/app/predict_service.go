package app

import (
	"context"
	"time"

	"ecoguardian/internal/ai"
	"ecoguardian/internal/domain"
)

// Empty-history copy. The insight string doubles as the client's sentinel
// for the empty state and must not change.
const (
	emptyHistoryInsight        = "Start tracking your carbon footprint to receive AI-powered predictions"
	emptyHistoryRecommendation = "Add your first carbon entry to get personalized recommendations"
)

// PredictionGenerator produces a forecast from an aggregate snapshot.
// Implemented by ai.Advisor.
type PredictionGenerator interface {
	PredictResources(ctx context.Context, input ai.PredictionInput) (ai.PredictionResult, error)
}

// PredictionService derives short-term resource forecasts from a user's
// entry history.
type PredictionService struct {
	repo      domain.EntryRepository
	generator PredictionGenerator
}

// NewPredictionService creates a PredictionService.
func NewPredictionService(repo domain.EntryRepository, generator PredictionGenerator) *PredictionService {
	return &PredictionService{repo: repo, generator: generator}
}

// Predict loads the user's history and generates the forecast. An empty
// history short-circuits to the fixed zero response.
func (s *PredictionService) Predict(ctx context.Context, userID string) (ai.PredictionResult, error) {
	entries, err := s.repo.ListEntriesByUser(ctx, userID)
	if err != nil {
		return ai.PredictionResult{}, err
	}
	if len(entries) == 0 {
		return emptyHistoryResult(), nil
	}

	now := time.Now()
	weekStart := now.Add(-7 * 24 * time.Hour)

	var total, weeklyTotal float64
	breakdown := make(map[domain.Category]float64)
	for _, e := range entries {
		total += e.Amount
		breakdown[e.Category] += e.Amount
		if !e.Date.Before(weekStart) {
			weeklyTotal += e.Amount
		}
	}

	top := domain.CategoryTransportation
	var topAmount float64
	for _, c := range domain.Categories() {
		if amount, ok := breakdown[c]; ok && amount > topAmount {
			top, topAmount = c, amount
		}
	}

	return s.generator.PredictResources(ctx, ai.PredictionInput{
		DailyAverage:      total / float64(len(entries)),
		WeeklyTotal:       weeklyTotal,
		TopCategory:       top,
		CategoryBreakdown: breakdown,
	})
}

func emptyHistoryResult() ai.PredictionResult {
	zero := ai.ResourcePrediction{Value: 0, Trend: ai.TrendStable, Confidence: 0}
	return ai.PredictionResult{
		EnergyPrediction: zero,
		WaterPrediction:  zero,
		CarbonPrediction: zero,
		Insights:         []string{emptyHistoryInsight},
		Recommendations:  []string{emptyHistoryRecommendation},
	}
}
