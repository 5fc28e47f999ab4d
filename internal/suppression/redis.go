package suppression

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKey = "portal:suppression"

// RedisStore is a Redis-backed suppression set shared across processes.
// The set lives in a single hash keyed by email hash.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client. Callers own the client
// lifecycle and should have pinged it already.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Suppress adds the address to the shared set.
func (s *RedisStore) Suppress(ctx context.Context, email, reason string) error {
	if err := s.client.HSet(ctx, redisKey, HashEmail(email), reason).Err(); err != nil {
		return fmt.Errorf("suppress %s: %w", HashEmail(email)[:8], err)
	}
	return nil
}

// IsSuppressed reports membership and the recorded reason.
func (s *RedisStore) IsSuppressed(ctx context.Context, email string) (bool, string, error) {
	reason, err := s.client.HGet(ctx, redisKey, HashEmail(email)).Result()
	if errors.Is(err, redis.Nil) {
		return false, "", nil
	}
	if err != nil {
		return false, "", fmt.Errorf("suppression lookup: %w", err)
	}
	return true, reason, nil
}

// Count returns the set size.
func (s *RedisStore) Count(ctx context.Context) (int64, error) {
	n, err := s.client.HLen(ctx, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("suppression count: %w", err)
	}
	return n, nil
}
