package app

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"ecoguardian/internal/domain"
)

// EntryService encapsulates carbon entry use cases.
type EntryService struct {
	repo domain.EntryRepository
}

// NewEntryService creates an EntryService backed by the given repository.
func NewEntryService(repo domain.EntryRepository) *EntryService {
	return &EntryService{repo: repo}
}

// Create validates and stores a new carbon entry. A zero date defaults to
// the current time.
func (s *EntryService) Create(ctx context.Context, userID, category string, amount float64, description string, date time.Time) (domain.Entry, error) {
	cat, err := domain.ParseCategory(category)
	if err != nil {
		return domain.Entry{}, err
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return domain.Entry{}, errors.New("amount must be a non-negative number")
	}
	if date.IsZero() {
		date = time.Now()
	}

	entry := domain.Entry{
		ID:          uuid.NewString(),
		UserID:      userID,
		Category:    cat,
		Amount:      amount,
		Description: description,
		Date:        date,
	}
	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

// List returns all of a user's entries, newest first.
func (s *EntryService) List(ctx context.Context, userID string) ([]domain.Entry, error) {
	return s.repo.ListEntriesByUser(ctx, userID)
}

// ListRange returns a user's entries dated within [start, end], newest first.
func (s *EntryService) ListRange(ctx context.Context, userID string, start, end time.Time) ([]domain.Entry, error) {
	if end.Before(start) {
		return nil, errors.New("range end must not precede start")
	}
	return s.repo.ListEntriesByUserInRange(ctx, userID, start, end)
}
