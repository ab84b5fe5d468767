// Package cache holds the advisory cart-cache invalidator. Invalidation
// failures are the caller's to log; they are never user-facing.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Invalidator drops cached entries after a cart write. Implementations must
// be safe to call with a short deadline; callers treat failures as advisory.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

type redisCache struct {
	client  *redis.Client
	service string
}

// NewRedis returns an Invalidator backed by a redis client.
func NewRedis(addr, service string) Invalidator {
	return &redisCache{
		client:  redis.NewClient(&redis.Options{Addr: addr}),
		service: service,
	}
}

func (r *redisCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	namespaced := make([]string, 0, len(keys))
	for _, k := range keys {
		namespaced = append(namespaced, fmt.Sprintf("%s:%s", r.service, k))
	}
	return r.client.Del(ctx, namespaced...).Err()
}

// Noop is used when no redis address is configured.
type Noop struct{}

func (Noop) Invalidate(context.Context, ...string) error { return nil }

// SessionKey builds the cache key for a session's cart.
func SessionKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
