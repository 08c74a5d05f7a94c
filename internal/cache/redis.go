// Package cache is a best-effort Redis cache for analytics responses.
//
// A nil or disconnected *Cache is valid: reads miss and writes are dropped,
// so the service keeps answering from the database when Redis is down.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resto-backend/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// Key prefixes. Every analytics entry lives under AnalyticsPrefix so writes
// can drop them in one sweep.
const (
	AnalyticsPrefix = "analytics:"
	scanBatch       = 200

	// generationKey counts analytics invalidations. It sits outside
	// AnalyticsPrefix so a sweep never resets it.
	generationKey = "analytics-generation"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// Options for Connect. An empty Addr disables caching.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Connect dials Redis and pings it. On failure it returns a disabled cache
// along with the error so the caller can log and carry on.
func Connect(ctx context.Context, opts Options) (*Cache, error) {
	if opts.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return New(client, opts.TTL), nil
}

// New wraps an existing client.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// AnalyticsKey builds a cache key from an endpoint name and its resolved parameters.
func AnalyticsKey(endpoint string, parts ...string) string {
	return AnalyticsPrefix + endpoint + ":" + strings.Join(parts, ":")
}

// Get returns the cached bytes for key.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == redis.Nil:
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return nil, false
	case err != nil:
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		return nil, false
	}
	metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
	return data, true
}

// Set stores data under key with the cache TTL.
func (c *Cache) Set(ctx context.Context, key string, data []byte) {
	if !c.Enabled() {
		return
	}
	c.client.Set(ctx, key, data, c.ttl)
}

// InvalidatePattern removes every key matching a glob pattern.
func (c *Cache) InvalidatePattern(ctx context.Context, pattern string) {
	if !c.Enabled() {
		return
	}
	iter := c.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if iter.Err() == nil && len(keys) > 0 {
		c.client.Del(ctx, keys...)
	}
}

// Versioned suffixes key with the current analytics generation. A result
// computed before an invalidation is stored under the old generation and is
// never read again.
func (c *Cache) Versioned(ctx context.Context, key string) string {
	if !c.Enabled() {
		return key
	}
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && err != redis.Nil {
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
	}
	return fmt.Sprintf("%s@%d", key, gen)
}

// InvalidateAnalytics drops all cached analytics responses. Writes that change
// bills, their table references or the menu names they join against call it.
func (c *Cache) InvalidateAnalytics(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	c.client.Incr(ctx, generationKey)
	c.InvalidatePattern(ctx, AnalyticsPrefix+"*")
}

// Ping reports whether Redis answers within two seconds.
func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return fmt.Errorf("redis cache disabled")
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
