// Package analytics computes derived carbon metrics from raw activity
// entries. Every function here is pure: the full entry history plus a
// reference time goes in, aggregated results come out. Nothing is cached;
// callers recompute on every request.
package analytics

import (
	"time"

	"ecoguardian/internal/domain"
)

const (
	windowDays = 30
	weekDays   = 7

	// potentialMultiplier estimates what a day without tracking would have
	// looked like relative to the recent daily average.
	potentialMultiplier = 1.5
)

// DailyPoint is one bucket of a per-day series.
type DailyPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// TopCategory identifies the category with the highest summed emissions.
type TopCategory struct {
	Category domain.Category `json:"category"`
	Amount   float64         `json:"amount"`
}

// StatsResult summarises a user's full entry history.
type StatsResult struct {
	Total             float64                     `json:"total"`
	MonthTotal        float64                     `json:"monthTotal"`
	CategoryBreakdown map[domain.Category]float64 `json:"categoryBreakdown"`
	EntryCount        int                         `json:"entryCount"`
}

// AnalyticsResult holds the trailing-window trend data.
type AnalyticsResult struct {
	DailyTotals        []DailyPoint                     `json:"dailyTotals"`
	CategoryTrends     map[domain.Category][]DailyPoint `json:"categoryTrends"`
	WeekOverWeekChange float64                          `json:"weekOverWeekChange"`
	ThisWeekTotal      float64                          `json:"thisWeekTotal"`
	LastWeekTotal      float64                          `json:"lastWeekTotal"`
	TopCategory        *TopCategory                     `json:"topCategory"`
	TotalEntries       int                              `json:"totalEntries"`
	AverageDaily       float64                          `json:"averageDaily"`
}

// DashboardResult holds the headline dashboard figures.
type DashboardResult struct {
	CarbonSavedToday    float64 `json:"carbonSavedToday"`
	SustainabilityScore int     `json:"sustainabilityScore"`
	TodayTotal          float64 `json:"todayTotal"`
	AverageDaily        float64 `json:"averageDaily"`
}

// localDay formats t as the calendar day it falls on in now's location.
func localDay(t, now time.Time) string {
	return t.In(now.Location()).Format("2006-01-02")
}

// Stats sums the full history: overall total, calendar-month total and a
// per-category breakdown. Categories with no entries are absent from the
// breakdown; Total always equals the sum of the breakdown values.
func Stats(entries []domain.Entry, now time.Time) StatsResult {
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	res := StatsResult{
		CategoryBreakdown: make(map[domain.Category]float64),
		EntryCount:        len(entries),
	}
	for _, e := range entries {
		res.Total += e.Amount
		if !e.Date.Before(startOfMonth) {
			res.MonthTotal += e.Amount
		}
		res.CategoryBreakdown[e.Category] += e.Amount
	}
	return res
}

// Analytics buckets the trailing 30 days into a daily series (overall and
// per category), computes the week-over-week delta and identifies the top
// category. Buckets are keyed by local calendar day and emitted in
// ascending date order regardless of input order. Entries outside the
// 30-day window contribute nothing here.
func Analytics(entries []domain.Entry, now time.Time) AnalyticsResult {
	days := make([]string, 0, windowDays)
	index := make(map[string]int, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := localDay(now.AddDate(0, 0, -i), now)
		index[day] = len(days)
		days = append(days, day)
	}

	daily := make([]DailyPoint, len(days))
	trends := make(map[domain.Category][]DailyPoint, len(domain.Categories()))
	for i, day := range days {
		daily[i] = DailyPoint{Date: day}
	}
	for _, c := range domain.Categories() {
		series := make([]DailyPoint, len(days))
		for i, day := range days {
			series[i] = DailyPoint{Date: day}
		}
		trends[c] = series
	}

	weekStart := now.Add(-weekDays * 24 * time.Hour)
	priorWeekStart := now.Add(-2 * weekDays * 24 * time.Hour)

	var thisWeek, lastWeek, windowTotal float64
	windowByCategory := make(map[domain.Category]float64)

	for _, e := range entries {
		if i, ok := index[localDay(e.Date, now)]; ok {
			daily[i].Amount += e.Amount
			if series, ok := trends[e.Category]; ok {
				series[i].Amount += e.Amount
			}
			windowTotal += e.Amount
			windowByCategory[e.Category] += e.Amount
		}
		if !e.Date.Before(weekStart) {
			thisWeek += e.Amount
		} else if !e.Date.Before(priorWeekStart) {
			lastWeek += e.Amount
		}
	}

	var change float64
	if lastWeek > 0 {
		change = (thisWeek - lastWeek) / lastWeek * 100
	}

	var top *TopCategory
	for _, c := range domain.Categories() {
		amount, ok := windowByCategory[c]
		if !ok {
			continue
		}
		if top == nil || amount > top.Amount {
			top = &TopCategory{Category: c, Amount: amount}
		}
	}

	return AnalyticsResult{
		DailyTotals:        daily,
		CategoryTrends:     trends,
		WeekOverWeekChange: change,
		ThisWeekTotal:      thisWeek,
		LastWeekTotal:      lastWeek,
		TopCategory:        top,
		TotalEntries:       len(entries),
		AverageDaily:       windowTotal / windowDays,
	}
}

// Dashboard computes today's total, the trailing-7-day daily average, the
// "carbon saved today" estimate and the 0-100 sustainability score.
func Dashboard(entries []domain.Entry, now time.Time) DashboardResult {
	today := localDay(now, now)
	weekStart := now.Add(-weekDays * 24 * time.Hour)

	var todayTotal, weekTotal float64
	categories := make(map[domain.Category]struct{})
	for _, e := range entries {
		if localDay(e.Date, now) == today {
			todayTotal += e.Amount
		}
		if !e.Date.Before(weekStart) {
			weekTotal += e.Amount
		}
		categories[e.Category] = struct{}{}
	}

	averageDaily := weekTotal / weekDays

	var saved float64
	if averageDaily > 0 {
		potential := averageDaily * potentialMultiplier
		if potential > todayTotal {
			saved = potential - todayTotal
		}
	}

	return DashboardResult{
		CarbonSavedToday:    saved,
		SustainabilityScore: sustainabilityScore(len(entries), len(categories), averageDaily, saved),
		TodayTotal:          todayTotal,
		AverageDaily:        averageDaily,
	}
}

// sustainabilityScore combines four bounded sub-scores: tracking volume
// (max 30), improvement (25), category diversity (max 25) and emission
// intensity (max 20).
func sustainabilityScore(entryCount, categoryCount int, averageDaily, saved float64) int {
	score := 0

	if entryCount >= weekDays {
		score += 30
	} else if s := entryCount * 4; s < 30 {
		score += s
	} else {
		score += 30
	}

	if averageDaily > 0 && saved > 0 {
		score += 25
	}

	if d := categoryCount * 8; d < 25 {
		score += d
	} else {
		score += 25
	}

	switch {
	case averageDaily > 0 && averageDaily < 15:
		score += 20
	case averageDaily >= 15 && averageDaily < 25:
		score += 10
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
