package extractor

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedExtractor wraps an Extractor with a Redis cache keyed by source URL.
type CachedExtractor struct {
	inner Extractor
	cache *redis.Client
	ttl   time.Duration
}

// NewCachedExtractor creates a new CachedExtractor. A nil cache or a
// non-positive ttl disables caching.
func NewCachedExtractor(inner Extractor, cache *redis.Client, ttl time.Duration) *CachedExtractor {
	return &CachedExtractor{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

func cacheKey(url string) string {
	return "extractor_cache:{" + url + "}"
}

// Extract returns a cached payload for req.URL when present, otherwise calls the wrapped extractor.
func (c *CachedExtractor) Extract(ctx context.Context, req Request) (*Payload, error) {
	if c.cache == nil || c.ttl <= 0 {
		return c.inner.Extract(ctx, req)
	}

	key := cacheKey(req.URL)

	raw, err := c.cache.HGet(ctx, key, "payload").Result()
	if err == nil {
		var cached Payload
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
	}

	payload, err := c.inner.Extract(ctx, req)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return payload, nil
	}
	pipe := c.cache.Pipeline()
	pipe.HSet(ctx, key, "payload", encoded, "fetched_at", time.Now().UTC().Format(time.RFC3339))
	pipe.Expire(ctx, key, c.ttl)
	_, _ = pipe.Exec(ctx)

	return payload, nil
}

var _ Extractor = (*CachedExtractor)(nil)
