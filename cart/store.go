package cart

import (
	"encoding/json"
	"os"
	"sync"
)

// Storage persists cart state between client sessions.
type Storage interface {
	Load() (State, error)
	Save(State) error
}

// FileStorage keeps the cart as a JSON file, the local-storage analog
// for a non-browser client.
type FileStorage struct {
	Path string
}

func (f FileStorage) Load() (State, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return State{}, err
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, err
	}
	return s, nil
}

func (f FileStorage) Save(s State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0644)
}

// Store wraps a State with its Storage: every dispatched action is
// reduced and the resulting state saved before it is returned.
type Store struct {
	mu      sync.Mutex
	state   State
	storage Storage
}

// Open rehydrates a Store from storage. A missing or unreadable
// snapshot yields an empty cart rather than an error.
func Open(storage Storage) *Store {
	store := &Store{storage: storage}
	if s, err := storage.Load(); err == nil {
		store.state = s
	}
	return store
}

// Dispatch applies an action, persists the new state, and returns it.
func (s *Store) Dispatch(a Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, a)
	if err := s.storage.Save(s.state); err != nil {
		return s.state, err
	}
	return s.state, nil
}

// State returns the current cart contents.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
