package memstore

import (
	"context"
	"sync"

	"github.com/Makepad-fr/shoplist/internal/store"
)

// Store is an in-memory store. Nothing survives the process.
// GetErr and SetErr, when set, are returned instead of touching the map;
// tests use them to simulate a broken backend.
type Store struct {
	mu sync.RWMutex
	m  map[string][]byte

	GetErr error
	SetErr error

	sets int
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{m: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	v, ok := s.m[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets++
	if s.SetErr != nil {
		return s.SetErr
	}
	s.m[key] = append([]byte(nil), value...)
	return nil
}

// Sets counts Set calls, including failed ones.
func (s *Store) Sets() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sets
}

func (s *Store) Close() error { return nil }
