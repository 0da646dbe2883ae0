// Package cache keeps template file bytes in Redis so repeated merges
// against the same template skip the Postgres content read. Rendered output
// is never cached.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	contentKeyPrefix = "tpl:content:" // tpl:content:{slug}
	contentTTL       = 1 * time.Hour
)

// ContentCache caches template content keyed by slug. A nil *ContentCache is
// valid and behaves as a cache that never hits, so callers need no
// redis-enabled branch.
type ContentCache struct {
	client *redis.Client
}

func New(client *redis.Client) *ContentCache {
	return &ContentCache{client: client}
}

// Get returns the cached content for slug, or (nil, false) on a miss.
func (c *ContentCache) Get(ctx context.Context, slug string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, contentKeyPrefix+slug).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		// cache trouble must never fail a merge
		return nil, false
	}
	return data, true
}

// Set stores content for slug with a TTL.
func (c *ContentCache) Set(ctx context.Context, slug string, content []byte) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, contentKeyPrefix+slug, content, contentTTL).Err()
}

// Invalidate drops the cached content for slug. Called on every template
// create, update, and delete.
func (c *ContentCache) Invalidate(ctx context.Context, slug string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, contentKeyPrefix+slug).Err()
}
