package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"ecoguardian/internal/domain"
)

// GoalService encapsulates reduction-goal use cases. Goals are append-only;
// the latest goal per user is the active one.
type GoalService struct {
	repo domain.GoalRepository
}

// NewGoalService creates a GoalService backed by the given repository.
func NewGoalService(repo domain.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

// Create validates and stores a new goal.
func (s *GoalService) Create(ctx context.Context, userID, category string, targetAmount float64, period string) (domain.Goal, error) {
	cat, err := domain.ParseCategory(category)
	if err != nil {
		return domain.Goal{}, err
	}
	if targetAmount <= 0 {
		return domain.Goal{}, errors.New("targetAmount must be > 0")
	}
	if period != "week" && period != "month" {
		return domain.Goal{}, errors.New("period must be \"week\" or \"month\"")
	}

	goal := domain.Goal{
		ID:           uuid.NewString(),
		UserID:       userID,
		Category:     cat,
		TargetAmount: targetAmount,
		Period:       period,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateGoal(ctx, goal); err != nil {
		return domain.Goal{}, err
	}
	return goal, nil
}

// List returns all of a user's goals, newest first.
func (s *GoalService) List(ctx context.Context, userID string) ([]domain.Goal, error) {
	return s.repo.ListGoalsByUser(ctx, userID)
}

// Active returns the most recently created goal, or nil if none exist.
func (s *GoalService) Active(ctx context.Context, userID string) (*domain.Goal, error) {
	return s.repo.ActiveGoalByUser(ctx, userID)
}
