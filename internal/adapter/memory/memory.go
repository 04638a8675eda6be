// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"ecoguardian/internal/domain"
)

// DB implements in-memory storage for all repositories.
type DB struct {
	mu       sync.Mutex
	entries  []domain.Entry
	goals    []domain.Goal
	users    []*domain.User
	sessions map[string]*domain.Session
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.EntryRepository = (*DB)(nil)
var _ domain.GoalRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*DB)(nil)

// --- EntryRepository ---

// CreateEntry stores a carbon entry.
func (db *DB) CreateEntry(ctx context.Context, entry domain.Entry) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.entries = append(db.entries, entry)
	return nil
}

// ListEntriesByUser returns a user's entries, newest first.
func (db *DB) ListEntriesByUser(ctx context.Context, userID string) ([]domain.Entry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.Entry
	for _, e := range db.entries {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

// ListEntriesByUserInRange returns a user's entries dated within [start, end],
// newest first.
func (db *DB) ListEntriesByUserInRange(ctx context.Context, userID string, start, end time.Time) ([]domain.Entry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.Entry
	for _, e := range db.entries {
		if e.UserID != userID {
			continue
		}
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

// --- GoalRepository ---

// CreateGoal stores a goal.
func (db *DB) CreateGoal(ctx context.Context, goal domain.Goal) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.goals = append(db.goals, goal)
	return nil
}

// ListGoalsByUser returns a user's goals, newest first.
func (db *DB) ListGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.Goal
	for _, g := range db.goals {
		if g.UserID == userID {
			result = append(result, g)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// ActiveGoalByUser returns the most recently created goal, or nil if none.
func (db *DB) ActiveGoalByUser(ctx context.Context, userID string) (*domain.Goal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var active *domain.Goal
	for i := range db.goals {
		g := &db.goals[i]
		if g.UserID != userID {
			continue
		}
		if active == nil || g.CreatedAt.After(active.CreatedAt) {
			active = g
		}
	}
	if active == nil {
		return nil, nil
	}
	ret := *active
	return &ret, nil
}

// --- UserRepository ---

// GetUserByUsername retrieves a user by username. Returns nil if not found.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			ret := *u
			return &ret, nil
		}
	}
	return nil, nil
}

// GetUserByID retrieves a user by ID. Returns nil if not found.
func (db *DB) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			ret := *u
			return &ret, nil
		}
	}
	return nil, nil
}

// CreateUser stores a new user, rejecting duplicate usernames.
func (db *DB) CreateUser(ctx context.Context, user domain.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == user.Username {
			return errors.New("user already exists")
		}
	}
	u := user
	db.users = append(db.users, &u)
	return nil
}

// --- SessionRepository ---

// CreateSession stores a session keyed by token.
func (db *DB) CreateSession(ctx context.Context, session domain.Session) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	s := session
	db.sessions[session.Token] = &s
	return nil
}

// GetSessionByToken retrieves a session by token. Returns nil if not found.
// Expiry is the caller's concern.
func (db *DB) GetSessionByToken(ctx context.Context, token string) (*domain.Session, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if s, ok := db.sessions[token]; ok {
		ret := *s
		return &ret, nil
	}
	return nil, nil
}

// DeleteSession removes a session.
func (db *DB) DeleteSession(ctx context.Context, token string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.sessions, token)
	return nil
}

// DeleteExpiredSessions removes all expired sessions.
func (db *DB) DeleteExpiredSessions(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	now := time.Now()
	for k, v := range db.sessions {
		if now.After(v.ExpiresAt) {
			delete(db.sessions, k)
		}
	}
	return nil
}
