// Package cache provides the read-through classification cache.  The
// classification list backs the navigation menu of every page, so it is
// read on effectively every request; rather than recomputing it ad hoc,
// the list is served from Redis with a short TTL and invalidated when a
// classification is added.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iliyamo/dealership-inventory/internal/config"
	"github.com/iliyamo/dealership-inventory/internal/model"
)

// ClassificationLister is the slice of the catalog store the cache needs.
type ClassificationLister interface {
	ListAll(ctx context.Context) ([]model.Classification, error)
}

// ClassificationCache serves the classification list, preferring Redis
// and falling through to the store on a miss.  A nil Redis client or a
// disabled config turns it into a plain passthrough.  List never fails
// observably: a store error degrades to an empty list with a logged
// error so pages stay usable.
type ClassificationCache struct {
	cfg   config.NavCacheConfig
	rdb   *redis.Client
	store ClassificationLister
	log   zerolog.Logger
}

// NewClassificationCache wires the cache over the given store.
func NewClassificationCache(cfg config.NavCacheConfig, rdb *redis.Client, store ClassificationLister, log zerolog.Logger) *ClassificationCache {
	return &ClassificationCache{cfg: cfg, rdb: rdb, store: store, log: log}
}

func (c *ClassificationCache) key() string { return c.cfg.Prefix + ":classifications" }

func (c *ClassificationCache) enabled() bool { return c.cfg.Enabled && c.rdb != nil }

// List returns the classification list sorted by name.  Redis failures
// are treated as misses; only a store failure degrades the result to an
// empty list.
func (c *ClassificationCache) List(ctx context.Context) []model.Classification {
	if c.enabled() {
		if raw, err := c.rdb.Get(ctx, c.key()).Bytes(); err == nil {
			var cached []model.Classification
			if jerr := json.Unmarshal(raw, &cached); jerr == nil {
				return cached
			}
			// Corrupt entry: drop it and fall through to the store.
			_ = c.rdb.Del(ctx, c.key()).Err()
		}
	}

	list, err := c.store.ListAll(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("classification list failed; serving empty list")
		return []model.Classification{}
	}
	if list == nil {
		list = []model.Classification{}
	}

	if c.enabled() {
		if raw, err := json.Marshal(list); err == nil {
			ttl := c.cfg.TTL
			if ttl <= 0 {
				ttl = 30 * time.Second
			}
			if err := c.rdb.Set(ctx, c.key(), raw, ttl).Err(); err != nil {
				c.log.Warn().Err(err).Msg("classification cache write failed")
			}
		}
	}
	return list
}

// Invalidate drops the cached list.  Called after a classification is
// created so the new entry shows up without waiting out the TTL.
func (c *ClassificationCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Del(ctx, c.key()).Err(); err != nil {
		c.log.Warn().Err(err).Msg("classification cache invalidate failed")
	}
}
