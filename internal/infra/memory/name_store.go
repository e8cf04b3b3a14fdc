package memory

import (
	"context"
	"sync"

	"cert-quiz-service/internal/domain"
)

// NameStore keeps participant names across attempts in process memory.
// Save validates the shared name contract so an invalid name is never
// persisted; Load reports absence rather than failing.
type NameStore struct {
	mu    sync.RWMutex
	names map[string]string
}

func NewNameStore() *NameStore {
	return &NameStore{names: make(map[string]string)}
}

func (s *NameStore) Save(_ context.Context, participantID, name string) error {
	if err := domain.ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names[participantID] = name
	return nil
}

func (s *NameStore) Load(_ context.Context, participantID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.names[participantID]
	return name, ok, nil
}

func (s *NameStore) Clear(_ context.Context, participantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.names, participantID)
	return nil
}
