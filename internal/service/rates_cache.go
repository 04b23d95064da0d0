package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"eiborservice/internal/repository"
)

const cacheKeyPrefixLatest = "eibor:latest:"

func latestCacheKey(tenors []repository.Tenor, limit int) string {
	keys := make([]string, len(tenors))
	for i, t := range tenors {
		keys[i] = string(t)
	}
	return fmt.Sprintf("%s{%s}:%d", cacheKeyPrefixLatest, strings.Join(keys, ","), limit)
}

func snapshotCacheKey() string {
	return cacheKeyPrefixLatest + "snapshot"
}

// CacheInvalidator drops cached read results after the store changes.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// RatesCache keeps recent read results in Redis. A nil *RatesCache or a
// nil client turns every operation into a no-op.
type RatesCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.SugaredLogger
}

// NewRatesCache creates a new RatesCache.
func NewRatesCache(rdb *redis.Client, ttl time.Duration, logger *zap.SugaredLogger) *RatesCache {
	return &RatesCache{rdb: rdb, ttl: ttl, log: logger}
}

func (c *RatesCache) enabled() bool {
	return c != nil && c.rdb != nil && c.ttl > 0
}

type cachedRate struct {
	RateDate     string    `json:"rate_date"`
	Tenor        string    `json:"tenor"`
	Rate         string    `json:"rate"`
	PreviousRate *string   `json:"previous_rate"`
	DailyChange  string    `json:"daily_change"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (c *RatesCache) get(ctx context.Context, key string) ([]repository.RateObservation, bool) {
	if !c.enabled() {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var cached []cachedRate
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false
	}
	rows, err := fromCached(cached)
	if err != nil {
		c.log.Warnw("Dropping malformed cache entry", "key", key, "error", err)
		return nil, false
	}
	return rows, true
}

func (c *RatesCache) set(ctx context.Context, key string, rows []repository.RateObservation) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(toCached(rows))
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warnw("Failed to update cache", "key", key, "error", err)
	}
}

// Invalidate removes every cached read result.
func (c *RatesCache) Invalidate(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	var keys []string
	iter := c.rdb.Scan(ctx, 0, cacheKeyPrefixLatest+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete %d cache keys: %w", len(keys), err)
	}
	return nil
}

var _ CacheInvalidator = (*RatesCache)(nil)

func toCached(rows []repository.RateObservation) []cachedRate {
	out := make([]cachedRate, len(rows))
	for i, r := range rows {
		out[i] = cachedRate{
			RateDate:    r.RateDate.Format(repository.DateLayout),
			Tenor:       string(r.Tenor),
			Rate:        r.Rate.String(),
			DailyChange: r.DailyChange.String(),
			UpdatedAt:   r.UpdatedAt,
		}
		if r.PreviousRate.Valid {
			prev := r.PreviousRate.Decimal.String()
			out[i].PreviousRate = &prev
		}
	}
	return out
}

func fromCached(cached []cachedRate) ([]repository.RateObservation, error) {
	out := make([]repository.RateObservation, len(cached))
	for i, c := range cached {
		date, err := time.Parse(repository.DateLayout, c.RateDate)
		if err != nil {
			return nil, err
		}
		r := repository.RateObservation{
			RateDate:  date,
			Tenor:     repository.Tenor(c.Tenor),
			UpdatedAt: c.UpdatedAt,
		}
		if err := r.Rate.Scan(c.Rate); err != nil {
			return nil, err
		}
		if err := r.DailyChange.Scan(c.DailyChange); err != nil {
			return nil, err
		}
		if c.PreviousRate != nil {
			if err := r.PreviousRate.Scan(*c.PreviousRate); err != nil {
				return nil, err
			}
		}
		out[i] = r
	}
	return out, nil
}
