package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"ecoguardian/internal/domain"
)

// Trend labels used across all predictions.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// PredictionInput is the aggregate snapshot predictions are derived from.
type PredictionInput struct {
	DailyAverage      float64
	WeeklyTotal       float64
	TopCategory       domain.Category
	CategoryBreakdown map[domain.Category]float64
}

// ResourcePrediction is one forecast: a value (risk percentage or kg), a
// trend label and a 0-100 confidence.
type ResourcePrediction struct {
	Value      float64 `json:"value"`
	Trend      string  `json:"trend"`
	Confidence float64 `json:"confidence"`
}

// PredictionResult is the full forecast payload.
type PredictionResult struct {
	EnergyPrediction ResourcePrediction `json:"energyPrediction"`
	WaterPrediction  ResourcePrediction `json:"waterPrediction"`
	CarbonPrediction ResourcePrediction `json:"carbonPrediction"`
	Insights         []string           `json:"insights"`
	Recommendations  []string           `json:"recommendations"`
}

// PredictResources asks the remote service for a short-term forecast and
// falls back to the local formula when the remote is rate-limited or
// returns something unusable. The local formula is the system of record;
// the remote path only adds phrasing variety.
func (a *Advisor) PredictResources(ctx context.Context, input PredictionInput) (PredictionResult, error) {
	reply, err := a.client.Complete(ctx, predictSystemPrompt(input),
		"Generate my 7-day resource usage forecast.", 700, 0.5)
	if err != nil {
		if classify(err) == classRateLimited {
			return fallbackPredictions(input), nil
		}
		return PredictionResult{}, fmt.Errorf("%w: %v", ErrCompletionFailed, err)
	}

	result, ok := parsePredictions(reply)
	if !ok {
		return fallbackPredictions(input), nil
	}
	return result, nil
}

func predictSystemPrompt(input PredictionInput) string {
	return fmt.Sprintf(`You are an environmental data analyst. Based on the user's carbon tracking data, forecast their resource usage risk for the next 7 days.

User data:
- Daily average: %.1f kg CO₂
- Weekly total: %.1f kg CO₂
- Top category: %s
- Transportation: %.1f kg
- Energy: %.1f kg
- Food: %.1f kg
- Shopping: %.1f kg

You MUST respond with ONLY a valid JSON object matching this shape, no markdown or commentary:
{"energyPrediction":{"value":0,"trend":"stable","confidence":0},"waterPrediction":{"value":0,"trend":"stable","confidence":0},"carbonPrediction":{"value":0,"trend":"stable","confidence":0},"insights":[],"recommendations":[]}

energyPrediction and waterPrediction values are risk percentages from 0 to 100; carbonPrediction value is the forecast in kg. Trends are "increasing", "decreasing" or "stable". Confidence is 0 to 100.`,
		input.DailyAverage,
		input.WeeklyTotal,
		input.TopCategory,
		input.CategoryBreakdown[domain.CategoryTransportation],
		input.CategoryBreakdown[domain.CategoryEnergy],
		input.CategoryBreakdown[domain.CategoryFood],
		input.CategoryBreakdown[domain.CategoryShopping])
}

// parsePredictions decodes the remote JSON, tolerating a markdown code
// fence around it. Malformed or incomplete payloads are rejected so the
// caller can fall back to the local formula.
func parsePredictions(reply string) (PredictionResult, bool) {
	content := strings.TrimSpace(reply)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var result PredictionResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return PredictionResult{}, false
	}
	for _, p := range []*ResourcePrediction{&result.EnergyPrediction, &result.WaterPrediction, &result.CarbonPrediction} {
		switch p.Trend {
		case TrendIncreasing, TrendDecreasing, TrendStable:
		default:
			return PredictionResult{}, false
		}
		p.Confidence = clamp(p.Confidence, 0, 100)
		if p.Value < 0 {
			p.Value = 0
		}
	}
	if len(result.Insights) == 0 || len(result.Recommendations) == 0 {
		return PredictionResult{}, false
	}
	return result, true
}

// fallbackPredictions derives the forecast locally from the aggregate
// snapshot alone, so repeated calls with the same input agree exactly.
func fallbackPredictions(input PredictionInput) PredictionResult {
	var total float64
	for _, v := range input.CategoryBreakdown {
		total += v
	}

	var energyShare, waterShare float64
	if total > 0 {
		energyShare = input.CategoryBreakdown[domain.CategoryEnergy] / total * 100
		// Water usage is not tracked directly; food production dominates
		// indirect water consumption, so its share stands in as the proxy.
		waterShare = input.CategoryBreakdown[domain.CategoryFood] * 0.8 / total * 100
	}

	expectedWeekly := input.DailyAverage * 7
	carbonTrend := TrendStable
	switch {
	case input.WeeklyTotal > expectedWeekly:
		carbonTrend = TrendIncreasing
	case input.WeeklyTotal < expectedWeekly*0.8:
		carbonTrend = TrendDecreasing
	}

	confidence := clamp(50+float64(len(input.CategoryBreakdown))*10, 0, 90)

	trendFor := func(cat domain.Category) string {
		if input.TopCategory == cat {
			return TrendIncreasing
		}
		return TrendStable
	}

	return PredictionResult{
		EnergyPrediction: ResourcePrediction{
			Value:      math.Round(clamp(energyShare, 0, 100)),
			Trend:      trendFor(domain.CategoryEnergy),
			Confidence: clamp(confidence-10, 0, 100),
		},
		WaterPrediction: ResourcePrediction{
			Value:      math.Round(clamp(waterShare, 0, 100)),
			Trend:      trendFor(domain.CategoryFood),
			Confidence: clamp(confidence-10, 0, 100),
		},
		CarbonPrediction: ResourcePrediction{
			Value:      math.Round(input.WeeklyTotal*10) / 10,
			Trend:      carbonTrend,
			Confidence: confidence,
		},
		Insights:        fallbackInsights(input, carbonTrend),
		Recommendations: fallbackPredictionRecommendations(input.TopCategory),
	}
}

func fallbackInsights(input PredictionInput, carbonTrend string) []string {
	insights := []string{
		fmt.Sprintf("Your highest-impact category is %s at %.1f kg CO₂",
			input.TopCategory, input.CategoryBreakdown[input.TopCategory]),
	}
	switch carbonTrend {
	case TrendIncreasing:
		insights = append(insights, fmt.Sprintf("This week's %.1f kg CO₂ is above your usual pace - small changes now will compound", input.WeeklyTotal))
	case TrendDecreasing:
		insights = append(insights, fmt.Sprintf("This week's %.1f kg CO₂ is below your usual pace - keep it up", input.WeeklyTotal))
	default:
		insights = append(insights, fmt.Sprintf("Your emissions are holding steady at about %.1f kg CO₂ per week", input.WeeklyTotal))
	}
	return insights
}

func fallbackPredictionRecommendations(top domain.Category) []string {
	switch top {
	case domain.CategoryEnergy:
		return []string{
			"Shift heavy appliance use to off-peak hours",
			"Lower your thermostat by 1-2 degrees this week",
		}
	case domain.CategoryFood:
		return []string{
			"Plan two plant-based meals this week",
			"Batch-cook to cut food waste and energy use",
		}
	case domain.CategoryShopping:
		return []string{
			"Pause non-essential purchases for the week",
			"Look for second-hand options before buying new",
		}
	default:
		return []string{
			"Swap one car trip for transit or cycling this week",
			"Combine errands into a single trip",
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
