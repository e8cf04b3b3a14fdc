package redis

import (
	"context"
	"time"

	"cert-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// NameStore persists participant names across sessions in Redis. Save
// refuses names outside the shared contract; Load clears stored values
// that no longer validate instead of returning them.
type NameStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewNameStore(client *redis.Client, ttl time.Duration) *NameStore {
	return &NameStore{client: client, ttl: ttl}
}

func (s *NameStore) Save(ctx context.Context, participantID, name string) error {
	if err := domain.ValidateName(name); err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(participantID), name, s.ttl).Err()
}

func (s *NameStore) Load(ctx context.Context, participantID string) (string, bool, error) {
	name, err := s.client.Get(ctx, s.key(participantID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if domain.ValidateName(name) != nil {
		_ = s.client.Del(ctx, s.key(participantID)).Err()
		return "", false, nil
	}
	return name, true, nil
}

func (s *NameStore) Clear(ctx context.Context, participantID string) error {
	return s.client.Del(ctx, s.key(participantID)).Err()
}

func (s *NameStore) key(participantID string) string {
	return "participant:" + participantID + ":name"
}
