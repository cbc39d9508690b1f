// Package cache provides a small JSON read-through cache on Redis for
// the analytics leaderboard.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds leaderboard staleness.
const DefaultTTL = 5 * time.Minute

// Redis caches JSON values with a fixed TTL. A nil or unreachable Redis
// degrades to cache misses; callers always keep their repository path.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a cache on the given client. ttl <= 0 uses DefaultTTL.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

// Get loads and unmarshals the value at key into v. Returns false on
// miss, transport error, or malformed payload.
func (c *Redis) Get(ctx context.Context, key string, v interface{}) bool {
	b, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("[cache] get %s: %v", key, err)
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		log.Printf("[cache] unmarshal %s: %v", key, err)
		return false
	}
	return true
}

// Set marshals v and stores it at key with the cache TTL. Failures are
// logged and swallowed.
func (c *Redis) Set(ctx context.Context, key string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("[cache] marshal %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		log.Printf("[cache] set %s: %v", key, err)
	}
}
