package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ecoguardian/internal/domain"
)

// CreateGoal inserts a new goal.
func (d *DB) CreateGoal(ctx context.Context, goal domain.Goal) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO goals (id, user_id, category, target_amount, period, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		goal.ID, goal.UserID, string(goal.Category), goal.TargetAmount, goal.Period, goal.CreatedAt.UTC(),
	)
	return err
}

// ListGoalsByUser returns a user's goals, newest first.
func (d *DB) ListGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, category, target_amount, period, created_at FROM goals WHERE user_id = $1 ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Goal
	for rows.Next() {
		var g domain.Goal
		var category string
		if err := rows.Scan(&g.ID, &g.UserID, &category, &g.TargetAmount, &g.Period, &g.CreatedAt); err != nil {
			return nil, err
		}
		g.Category = domain.Category(category)
		out = append(out, g)
	}
	return out, rows.Err()
}

// ActiveGoalByUser returns the most recently created goal, or nil if none.
func (d *DB) ActiveGoalByUser(ctx context.Context, userID string) (*domain.Goal, error) {
	var g domain.Goal
	var category string
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, user_id, category, target_amount, period, created_at FROM goals WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1",
		userID,
	).Scan(&g.ID, &g.UserID, &category, &g.TargetAmount, &g.Period, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g.Category = domain.Category(category)
	return &g, nil
}
