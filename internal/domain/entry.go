package domain

import (
	"context"
	"time"
)

// Entry represents a single logged carbon-emitting activity. Entries are
// append-only: once created they are never mutated or deleted.
type Entry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Category    Category  `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
}

// EntryRepository is the port for carbon entry persistence.
type EntryRepository interface {
	CreateEntry(ctx context.Context, entry Entry) error
	ListEntriesByUser(ctx context.Context, userID string) ([]Entry, error)
	ListEntriesByUserInRange(ctx context.Context, userID string, start, end time.Time) ([]Entry, error)
}
