package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore remembers which article URLs were extracted recently so
// repeat runs skip the article-page fetch. Entries expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(addr string, ttl time.Duration) *RedisStore {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisStore{client: rdb, ttl: ttl}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func seenKey(source, url string) string {
	return fmt.Sprintf("seen:%s:%s", source, url)
}

// Seen reports whether the URL was marked within the TTL window.
func (s *RedisStore) Seen(ctx context.Context, source, url string) (bool, error) {
	n, err := s.client.Exists(ctx, seenKey(source, url)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Mark records the URL as extracted.
func (s *RedisStore) Mark(ctx context.Context, source, url string) error {
	return s.client.Set(ctx, seenKey(source, url), "1", s.ttl).Err()
}
