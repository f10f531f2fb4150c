package notify

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduper remembers which notifications were already sent so repeats can
// be suppressed.
type Deduper interface {
	// Add records key and reports true when it was not seen before.
	Add(ctx context.Context, key string) (bool, error)
	// Remove forgets key so a later attempt may send again.
	Remove(ctx context.Context, key string) error
}

// RedisDeduper stores sent-notification keys in Redis so every instance of
// the service sees the same history.
type RedisDeduper struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisDeduper creates a deduper using the provided Redis client and TTL.
func NewRedisDeduper(client *redis.Client, ttl time.Duration) *RedisDeduper {
	return &RedisDeduper{client: client, prefix: "board:notify:", ttl: ttl}
}

// NewRedisClient connects to the Redis server at url and verifies it with a ping.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Add implements Deduper.
func (r *RedisDeduper) Add(ctx context.Context, key string) (bool, error) {
	return r.client.SetNX(ctx, r.prefix+key, 1, r.ttl).Result()
}

// Remove implements Deduper.
func (r *RedisDeduper) Remove(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}
