package geo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type CacheConfig struct {
	Enable bool
	Addr   string
	DB     int
	TTL    time.Duration
}

// CachedLocator caches lookups in redis. Disabled by default so each IP
// is fetched fresh per run; enabling it trades row freshness for fewer
// external calls. Redis errors fall through to the inner locator.
type CachedLocator struct {
	inner Locator
	rdb   *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

var _ Locator = (*CachedLocator)(nil)

func NewCachedLocator(inner Locator, cfg CacheConfig, log *zap.Logger) *CachedLocator {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedLocator{
		inner: inner,
		rdb:   redis.NewClient(&redis.Options{Addr: cfg.Addr, DB: cfg.DB}),
		ttl:   ttl,
		log:   log,
	}
}

func (c *CachedLocator) Locate(ctx context.Context, ip string) Location {
	key := "coloscope:geo:" + ip

	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var loc Location
		if err := json.Unmarshal(raw, &loc); err == nil {
			return loc
		}
	} else if err != redis.Nil {
		c.log.Debug("geo cache get", zap.String("ip", ip), zap.Error(err))
	}

	loc := c.inner.Locate(ctx, ip)
	if loc != Unknown {
		if raw, err := json.Marshal(loc); err == nil {
			if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
				c.log.Debug("geo cache set", zap.String("ip", ip), zap.Error(err))
			}
		}
	}
	return loc
}

func (c *CachedLocator) Close() error { return c.rdb.Close() }
