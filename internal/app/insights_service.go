package app

import (
	"context"
	"time"

	"ecoguardian/internal/ai"
	"ecoguardian/internal/analytics"
	"ecoguardian/internal/domain"
)

// InsightsService computes derived metrics over a user's entry history.
// Every call recomputes from scratch; there is no caching.
type InsightsService struct {
	repo domain.EntryRepository
}

// NewInsightsService creates an InsightsService backed by the given repository.
func NewInsightsService(repo domain.EntryRepository) *InsightsService {
	return &InsightsService{repo: repo}
}

// Stats returns full-history totals and the category breakdown.
func (s *InsightsService) Stats(ctx context.Context, userID string) (analytics.StatsResult, error) {
	entries, err := s.repo.ListEntriesByUser(ctx, userID)
	if err != nil {
		return analytics.StatsResult{}, err
	}
	return analytics.Stats(entries, time.Now()), nil
}

// Analytics returns the trailing-window trend data.
func (s *InsightsService) Analytics(ctx context.Context, userID string) (analytics.AnalyticsResult, error) {
	entries, err := s.repo.ListEntriesByUser(ctx, userID)
	if err != nil {
		return analytics.AnalyticsResult{}, err
	}
	return analytics.Analytics(entries, time.Now()), nil
}

// Dashboard returns the headline dashboard figures.
func (s *InsightsService) Dashboard(ctx context.Context, userID string) (analytics.DashboardResult, error) {
	entries, err := s.repo.ListEntriesByUser(ctx, userID)
	if err != nil {
		return analytics.DashboardResult{}, err
	}
	return analytics.Dashboard(entries, time.Now()), nil
}

// UserContext assembles the aggregate figures the AI advisor embeds in its
// prompts.
func (s *InsightsService) UserContext(ctx context.Context, userID string) (*ai.UserContext, error) {
	stats, err := s.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ai.UserContext{
		TotalCarbon:       stats.Total,
		MonthCarbon:       stats.MonthTotal,
		CategoryBreakdown: stats.CategoryBreakdown,
	}, nil
}
