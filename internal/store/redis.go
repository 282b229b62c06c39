package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces all app keys in Redis.
const KeyPrefix = "gluco:"

// RedisStore backs the Store interface with Redis. Values are whole
// serialized collections, so keys carry no TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Read(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, KeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Write(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, KeyPrefix+key, value, 0).Err()
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, KeyPrefix+key).Err()
}
