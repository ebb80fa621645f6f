// Package redis caches resolved day views. The cache is best-effort: every
// error degrades to a database read and is logged at warn.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	dayViewPrefix = "dayview:"
	dayViewTTL    = 30 * time.Second
)

type Cache struct {
	rdb *redis.Client
}

// New connects a cache client. Callers may keep a nil *Cache when no redis
// address is configured; every method tolerates it.
func New(address, username, password string) *Cache {
	return &Cache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     address,
			Username: username,
			Password: password,
			DB:       0,
		}),
	}
}

// GetDayView returns the cached JSON payload for a date key (YYYY-MM-DD),
// if present.
func (c *Cache) GetDayView(ctx context.Context, date string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.rdb.Get(ctx, dayViewPrefix+date).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("date", date).Msg("day view cache read failed")
		}
		return nil, false
	}
	return val, true
}

func (c *Cache) SetDayView(ctx context.Context, date string, payload []byte) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, dayViewPrefix+date, payload, dayViewTTL).Err(); err != nil {
		log.Warn().Err(err).Str("date", date).Msg("day view cache write failed")
	}
}

// InvalidateDay drops one date's cached view; used when a completion is
// written or cleared for that day.
func (c *Cache) InvalidateDay(ctx context.Context, date string) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, dayViewPrefix+date).Err(); err != nil {
		log.Warn().Err(err).Str("date", date).Msg("day view cache invalidation failed")
	}
}

// InvalidateAll drops every cached day view; used when playlists themselves
// change, since that can affect any date.
func (c *Cache) InvalidateAll(ctx context.Context) {
	if c == nil {
		return
	}
	keys, err := c.rdb.Keys(ctx, dayViewPrefix+"*").Result()
	if err != nil {
		log.Warn().Err(err).Msg("day view cache key scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("day view cache flush failed")
	}
}
