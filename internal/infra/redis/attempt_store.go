package redis

import (
	"context"
	"sync"
	"time"

	"cert-quiz-service/internal/app"
	"github.com/redis/go-redis/v9"
)

// AttemptStore is a Redis-aware implementation of app.AttemptRepository.
// Notes:
//   - Attempts themselves stay in a local map: their answer maps mutate on
//     every selection and an attempt never outlives its connection.
//   - Redis only marks attempt liveness with a TTL matching the time
//     limit, which gives operators visibility into in-flight attempts.
type AttemptStore struct {
	client   *redis.Client
	mu       sync.RWMutex
	attempts map[string]*app.Attempt
}

func NewAttemptStore(client *redis.Client) *AttemptStore {
	return &AttemptStore{
		client:   client,
		attempts: make(map[string]*app.Attempt),
	}
}

func (s *AttemptStore) Put(attempt *app.Attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[attempt.ID()] = attempt
	// best-effort liveness marker
	ttl := attempt.TimeLimit()
	if ttl <= 0 {
		ttl = time.Hour
	}
	_ = s.client.Set(context.Background(), s.key(attempt.ID()), attempt.Participant(), ttl).Err()
}

func (s *AttemptStore) Get(attemptID string) (*app.Attempt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attempt, ok := s.attempts[attemptID]
	return attempt, ok
}

func (s *AttemptStore) Delete(attemptID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.attempts[attemptID]; !ok {
		return
	}
	delete(s.attempts, attemptID)
	_ = s.client.Del(context.Background(), s.key(attemptID)).Err()
}

func (s *AttemptStore) key(attemptID string) string {
	return "quiz:attempt:" + attemptID
}
