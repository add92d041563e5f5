// Package cache memoizes upstream responses by key for a fixed TTL.
//
// The cache is transparent: a hit returns exactly what the fetch returned
// when it was stored, and a failing store is logged and skipped rather than
// surfaced to the caller.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

const DefaultTTL = 5 * time.Minute

// Store persists raw cache entries.
type Store interface {
	Get(ctx context.Context, key string) (data []byte, storedAt time.Time, ok bool, err error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

type Cache struct {
	store  Store
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

func New(store Store, ttl time.Duration, logger *slog.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		store:  store,
		ttl:    ttl,
		logger: logger.With("component", "cache"),
		now:    time.Now,
	}
}

func (c *Cache) TTL() time.Duration { return c.ttl }

// Invalidate drops key so the next Fetch goes upstream.
func (c *Cache) Invalidate(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		c.logger.Warn("cache delete failed", "key", key, "err", err)
	}
}

// Fetch returns the cached value for key when it is younger than the TTL,
// and otherwise calls fetch and stores its result. Errors from fetch are
// returned and never cached.
func Fetch[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := lookup[T](ctx, c, key); ok {
		return v, nil
	}

	v, err := fetch(ctx)
	if err != nil {
		return v, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("cache encode failed", "key", key, "err", err)
		return v, nil
	}
	if err := c.store.Set(ctx, key, data); err != nil {
		c.logger.Warn("cache write failed", "key", key, "err", err)
	}
	return v, nil
}

func lookup[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var v T
	data, storedAt, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed", "key", key, "err", err)
		return v, false
	}
	if !ok || c.now().Sub(storedAt) >= c.ttl {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.Warn("cache entry unreadable, refetching", "key", key, "err", err)
		var zero T
		return zero, false
	}
	c.logger.Debug("cache hit", "key", key)
	return v, true
}
