package domain

import (
	"context"
	"time"
)

// Goal is a user's stated reduction target. Goals are append-only; the most
// recently created goal for a user is the active one.
type Goal struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Category     Category  `json:"category"`
	TargetAmount float64   `json:"targetAmount"`
	Period       string    `json:"period"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GoalRepository is the port for goal persistence.
type GoalRepository interface {
	CreateGoal(ctx context.Context, goal Goal) error
	ListGoalsByUser(ctx context.Context, userID string) ([]Goal, error)
	ActiveGoalByUser(ctx context.Context, userID string) (*Goal, error)
}
