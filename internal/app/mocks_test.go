package app_test

import (
	"context"
	"time"

	"ecoguardian/internal/domain"
)

// ---------------------------------------------------------------------------
// Mock repositories (function-fields pattern)
// ---------------------------------------------------------------------------

type mockEntryRepo struct {
	createFn    func(ctx context.Context, entry domain.Entry) error
	listFn      func(ctx context.Context, userID string) ([]domain.Entry, error)
	listRangeFn func(ctx context.Context, userID string, start, end time.Time) ([]domain.Entry, error)
}

func (m *mockEntryRepo) CreateEntry(ctx context.Context, entry domain.Entry) error {
	if m.createFn != nil {
		return m.createFn(ctx, entry)
	}
	return nil
}

func (m *mockEntryRepo) ListEntriesByUser(ctx context.Context, userID string) ([]domain.Entry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockEntryRepo) ListEntriesByUserInRange(ctx context.Context, userID string, start, end time.Time) ([]domain.Entry, error) {
	if m.listRangeFn != nil {
		return m.listRangeFn(ctx, userID, start, end)
	}
	return nil, nil
}

type mockGoalRepo struct {
	createFn func(ctx context.Context, goal domain.Goal) error
	listFn   func(ctx context.Context, userID string) ([]domain.Goal, error)
	activeFn func(ctx context.Context, userID string) (*domain.Goal, error)
}

func (m *mockGoalRepo) CreateGoal(ctx context.Context, goal domain.Goal) error {
	if m.createFn != nil {
		return m.createFn(ctx, goal)
	}
	return nil
}

func (m *mockGoalRepo) ListGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockGoalRepo) ActiveGoalByUser(ctx context.Context, userID string) (*domain.Goal, error) {
	if m.activeFn != nil {
		return m.activeFn(ctx, userID)
	}
	return nil, nil
}

type mockUserRepo struct {
	byUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	byIDFn       func(ctx context.Context, id string) (*domain.User, error)
	createFn     func(ctx context.Context, user domain.User) error
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.byUsernameFn != nil {
		return m.byUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if m.byIDFn != nil {
		return m.byIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user domain.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

type mockSessionRepo struct {
	createFn  func(ctx context.Context, session domain.Session) error
	byTokenFn func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn  func(ctx context.Context, token string) error
}

func (m *mockSessionRepo) CreateSession(ctx context.Context, session domain.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepo) GetSessionByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.byTokenFn != nil {
		return m.byTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) DeleteSession(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpiredSessions(ctx context.Context) error {
	return nil
}
