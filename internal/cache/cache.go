package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Cache is a string-valued TTL cache. Get returns an empty string on a miss.
type Cache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Close() error
}

// redisCache implements Cache backed by a redis instance.
type redisCache struct {
	client *redis.Client
	prefix string
	logger zerolog.Logger
}

// NewRedisCache creates a redis-backed cache. The prefix namespaces this
// service's keys. Connectivity is verified with a ping.
func NewRedisCache(ctx context.Context, addr, prefix string, logger zerolog.Logger) (Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info().Str("addr", addr).Str("prefix", prefix).Msg("redis cache initialised")

	return &redisCache{
		client: client,
		prefix: prefix,
		logger: logger.With().Str("component", "redis-cache").Logger(),
	}, nil
}

func (c *redisCache) key(key string) string {
	return fmt.Sprintf("%s:%s", c.prefix, key)
}

// Set stores a value with the given TTL.
func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}
	return nil
}

// Get retrieves a value, or an empty string on a miss.
func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get cache key %s: %w", key, err)
	}
	return value, nil
}

// Close releases the underlying client.
func (c *redisCache) Close() error {
	return c.client.Close()
}
