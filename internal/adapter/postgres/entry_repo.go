package postgres

import (
	"context"
	"database/sql"
	"time"

	"ecoguardian/internal/domain"
)

// CreateEntry inserts a new carbon entry.
func (d *DB) CreateEntry(ctx context.Context, entry domain.Entry) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO carbon_entries (id, user_id, category, amount, description, date) VALUES ($1, $2, $3, $4, $5, $6)",
		entry.ID, entry.UserID, string(entry.Category), entry.Amount, entry.Description, entry.Date.UTC(),
	)
	return err
}

// ListEntriesByUser returns a user's entries, newest first.
func (d *DB) ListEntriesByUser(ctx context.Context, userID string) ([]domain.Entry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, category, amount, description, date FROM carbon_entries WHERE user_id = $1 ORDER BY date DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListEntriesByUserInRange returns a user's entries dated within [start, end],
// newest first.
func (d *DB) ListEntriesByUserInRange(ctx context.Context, userID string, start, end time.Time) ([]domain.Entry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, category, amount, description, date FROM carbon_entries WHERE user_id = $1 AND date >= $2 AND date <= $3 ORDER BY date DESC",
		userID, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]domain.Entry, error) {
	var out []domain.Entry
	for rows.Next() {
		var e domain.Entry
		var category string
		if err := rows.Scan(&e.ID, &e.UserID, &category, &e.Amount, &e.Description, &e.Date); err != nil {
			return nil, err
		}
		e.Category = domain.Category(category)
		out = append(out, e)
	}
	return out, rows.Err()
}
