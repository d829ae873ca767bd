package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/lexitrack/internal/domain"
)

const (
	lemmaPrefix   = "lemma:"
	surfacePrefix = "word:"
)

// LemmaKey returns the cache key of a lemma entry.
func LemmaKey(text string) string { return lemmaPrefix + text }

// SurfaceKey returns the cache key of a surface form entry.
func SurfaceKey(surface string) string { return surfacePrefix + surface }

// WordCache stores lemma and surface form entries as JSON values with a TTL.
// A miss is reported as (nil, nil); any other error means the cache is
// unreachable or holds a corrupt value.
type WordCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewWordCache creates a cache whose entries expire after ttl.
func NewWordCache(rdb *goredis.Client, ttl time.Duration) *WordCache {
	return &WordCache{rdb: rdb, ttl: ttl}
}

// GetLemma returns the cached entry for a lemma text.
func (c *WordCache) GetLemma(ctx context.Context, text string) (*domain.LemmaEntry, error) {
	var e domain.LemmaEntry
	found, err := c.get(ctx, LemmaKey(text), &e)
	if err != nil || !found {
		return nil, err
	}
	return &e, nil
}

// SetLemma writes a lemma entry, replacing any previous value.
func (c *WordCache) SetLemma(ctx context.Context, e domain.LemmaEntry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode lemma entry %q: %w", e.Text, err)
	}
	if err := c.rdb.Set(ctx, LemmaKey(e.Text), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", LemmaKey(e.Text), err)
	}
	return nil
}

// GetSurface returns the cached entry for a surface form.
func (c *WordCache) GetSurface(ctx context.Context, surface string) (*domain.SurfaceEntry, error) {
	var e domain.SurfaceEntry
	found, err := c.get(ctx, SurfaceKey(surface), &e)
	if err != nil || !found {
		return nil, err
	}
	return &e, nil
}

// SetSurfaceIfAbsent writes a surface entry only when the key does not exist,
// so the first mapping of a surface form sticks until it expires.
func (c *WordCache) SetSurfaceIfAbsent(ctx context.Context, e domain.SurfaceEntry) (bool, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return false, fmt.Errorf("encode surface entry %q: %w", e.Surface, err)
	}
	ok, err := c.rdb.SetNX(ctx, SurfaceKey(e.Surface), raw, c.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s: %w", SurfaceKey(e.Surface), err)
	}
	return ok, nil
}

// Ping checks the connection. Used by the readiness probe.
func (c *WordCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *WordCache) get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}
