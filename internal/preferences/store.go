package preferences

import (
	"context"
	"sync"

	"github.com/SAHU-01/VisaVerse/internal/errors"
)

// ErrNotFound is returned by repositories when no state has been saved for a session.
var ErrNotFound = errors.NewSentinel("preference state not found")

// Repository persists preference state across restarts. Implementations must
// return [ErrNotFound] from Load when the session has no saved state yet.
type Repository interface {
	Load(ctx context.Context, sessionID string) (State, error)
	Save(ctx context.Context, sessionID string, state State) error
}

// Store is the preference state container. It applies mutations one at a
// time and saves after every mutation so readers always observe the latest
// state. The storage backend is swappable: in-memory for tests, SQLite in
// production.
type Store struct {
	mu   sync.Mutex
	repo Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Get returns the session's current state, falling back to the initial
// state when the session has not been seen before.
func (s *Store) Get(ctx context.Context, sessionID string) (State, error) {
	state, err := s.repo.Load(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return NewState(), nil
	}
	if err != nil {
		return State{}, errors.Wrap(err, "load preference state")
	}
	return state, nil
}

// Update loads the session's state, applies mutate to it and saves the
// result. The mutation is atomic from the caller's perspective: the saved
// state is returned and no partially-applied state is ever observable.
func (s *Store) Update(ctx context.Context, sessionID string, mutate func(*State)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	mutate(&state)
	if err = s.repo.Save(ctx, sessionID, state); err != nil {
		return State{}, errors.Wrap(err, "save preference state")
	}
	return state, nil
}
