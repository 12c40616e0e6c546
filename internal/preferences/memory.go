package preferences

import (
	"context"
	"sync"
)

// MemoryRepository keeps preference state in a map. It is used in tests,
// where durability across restarts is not needed.
type MemoryRepository struct {
	mu     sync.RWMutex
	states map[string]State
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{states: make(map[string]State)}
}

func (r *MemoryRepository) Load(_ context.Context, sessionID string) (State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	state, ok := r.states[sessionID]
	if !ok {
		return State{}, ErrNotFound
	}
	return state.Clone(), nil
}

func (r *MemoryRepository) Save(_ context.Context, sessionID string, state State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[sessionID] = state.Clone()
	return nil
}
