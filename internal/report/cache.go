package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keeps rendered reports in redis for a short TTL. A nil client
// disables caching entirely; every method then falls through.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

func cacheKey(kind string, month, year, extra int) string {
	return fmt.Sprintf("report:%s:%d-%02d:%d", kind, year, month, extra)
}

// Get loads a cached report into dest. The bool says whether it hit.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c.client == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("report cache read failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("report cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c.client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("report cache marshal failed", "key", key, "error", err)
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("report cache write failed", "key", key, "error", err)
	}
}

// Invalidate drops every cached report. Called when allowance or
// order data changes, since any period may be affected.
func (c *Cache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, "report:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("report cache scan failed", "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("report cache invalidation failed", "error", err)
		return
	}
	c.logger.Debug("report cache invalidated", "keys", len(keys))
}
