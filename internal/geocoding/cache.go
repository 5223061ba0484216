package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"buildersite/internal/metrics"
)

const cacheKeyPrefix = "geocode:"

type cacheEntry struct {
	Result   *Result `json:"result,omitempty"`
	NotFound bool    `json:"not_found,omitempty"`
}

// Cached serves repeat lookups from redis. Misses are cached for
// negativeTTL; service errors are never cached. Redis failures degrade to a
// direct call to next.
type Cached struct {
	next        Geocoder
	client      *redis.Client
	ttl         time.Duration
	negativeTTL time.Duration
}

// NewCached wraps next with a redis cache.
func NewCached(next Geocoder, client *redis.Client, ttl, negativeTTL time.Duration) *Cached {
	return &Cached{next: next, client: client, ttl: ttl, negativeTTL: negativeTTL}
}

// Geocode implements Geocoder.
func (c *Cached) Geocode(ctx context.Context, address string) (*Result, error) {
	norm := NormalizeAddress(address)
	if norm == "" {
		return nil, ErrEmptyAddress
	}
	key := cacheKeyPrefix + norm

	if entry, ok := c.lookup(ctx, key); ok {
		if entry.NotFound {
			metrics.GeocodeCacheTotal.WithLabelValues("negative_hit").Inc()
			return nil, ErrNotFound
		}
		metrics.GeocodeCacheTotal.WithLabelValues("hit").Inc()
		return entry.Result, nil
	}
	metrics.GeocodeCacheTotal.WithLabelValues("miss").Inc()

	res, err := c.next.Geocode(ctx, address)
	switch {
	case err == nil:
		c.store(ctx, key, cacheEntry{Result: res}, c.ttl)
	case errors.Is(err, ErrNotFound) && c.negativeTTL > 0:
		c.store(ctx, key, cacheEntry{NotFound: true}, c.negativeTTL)
	}
	return res, err
}

func (c *Cached) lookup(ctx context.Context, key string) (cacheEntry, bool) {
	var entry cacheEntry
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			metrics.GeocodeCacheTotal.WithLabelValues("error").Inc()
			logrus.WithError(err).Warn("Geocode cache: read failed")
		}
		return entry, false
	}
	if err := json.Unmarshal(raw, &entry); err != nil || (!entry.NotFound && entry.Result == nil) {
		logrus.WithField("key", key).Warn("Geocode cache: dropping corrupt entry")
		c.client.Del(ctx, key)
		return cacheEntry{}, false
	}
	return entry, true
}

func (c *Cached) store(ctx context.Context, key string, entry cacheEntry, ttl time.Duration) {
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		metrics.GeocodeCacheTotal.WithLabelValues("error").Inc()
		logrus.WithError(err).Warn("Geocode cache: write failed")
	}
}
