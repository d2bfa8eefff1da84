package confirmation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "confirmation_code:"

// RedisStore keeps pending confirmation codes in Redis. Expiry is delegated
// to the key TTL, so a crashed process never leaves stale codes behind.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, username, codeHash string, ttl time.Duration) error {
	if err := s.client.Set(ctx, keyPrefix+username, codeHash, ttl).Err(); err != nil {
		return fmt.Errorf("save confirmation code: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, username string) (string, error) {
	val, err := s.client.Get(ctx, keyPrefix+username).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoCode
	}
	if err != nil {
		return "", fmt.Errorf("get confirmation code: %w", err)
	}
	return val, nil
}

func (s *RedisStore) Delete(ctx context.Context, username string) error {
	if err := s.client.Del(ctx, keyPrefix+username).Err(); err != nil {
		return fmt.Errorf("delete confirmation code: %w", err)
	}
	return nil
}
