package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/margianalogistics/logibot/pkg/logger"
)

// CachedStore decorates a Store with a Redis read-through cache for the
// lookups the bot hits hardest: single-order fetches and the summary
// statistics. Cache failures degrade to the underlying store, never to an
// error for the caller.
type CachedStore struct {
	Store

	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

// NewCachedStore wraps next with a Redis cache using the given TTL.
func NewCachedStore(next Store, client *redis.Client, ttl time.Duration, log *slog.Logger) *CachedStore {
	if log == nil {
		log = slog.Default()
	}
	return &CachedStore{Store: next, client: client, ttl: ttl, log: log}
}

func (c *CachedStore) GetByNumber(ctx context.Context, number string) (*Order, error) {
	key := "order:" + number

	if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var o Order
		if err := json.Unmarshal(data, &o); err == nil {
			return &o, nil
		}
		// Corrupt entry: drop it and fall through to the store.
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.log.WarnContext(ctx, "order cache read failed", logger.Error(err))
	}

	o, err := c.Store.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(o); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.WarnContext(ctx, "order cache write failed", logger.Error(err))
		}
	}
	return o, nil
}

func (c *CachedStore) Statistics(ctx context.Context, days int) (*Statistics, error) {
	key := fmt.Sprintf("order:stats:%d", days)

	if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var stats Statistics
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.log.WarnContext(ctx, "statistics cache read failed", logger.Error(err))
	}

	stats, err := c.Store.Statistics(ctx, days)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.WarnContext(ctx, "statistics cache write failed", logger.Error(err))
		}
	}
	return stats, nil
}

// Upsert writes through and invalidates the cached copy so readers never see
// a stale order after a sync run.
func (c *CachedStore) Upsert(ctx context.Context, o *Order) error {
	if err := c.Store.Upsert(ctx, o); err != nil {
		return err
	}

	if err := c.client.Del(ctx, "order:"+o.Number).Err(); err != nil {
		c.log.WarnContext(ctx, "order cache invalidation failed",
			logger.OrderNumber(o.Number), logger.Error(err))
	}
	return nil
}
