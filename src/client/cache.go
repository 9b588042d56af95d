package client

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/livefire2015/ez-receivables/src/services"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CacheObserver receives list cache hits and misses
type CacheObserver interface {
	ObserveCacheLookup(hit bool)
}

// CachedLedgerClient caches list results in Redis in front of another
// LedgerClient. Any mutation bumps a version key, which invalidates every
// cached list at once. Redis failures fall through to the wrapped client.
type CachedLedgerClient struct {
	next     services.LedgerClient
	rdb      redis.UniversalClient
	ttl      time.Duration
	prefix   string
	observer CacheObserver
	logger   zerolog.Logger
}

// CacheOption configures a CachedLedgerClient
type CacheOption func(*CachedLedgerClient)

// WithCachePrefix sets the Redis key prefix
func WithCachePrefix(prefix string) CacheOption {
	return func(c *CachedLedgerClient) { c.prefix = prefix }
}

// WithCacheObserver reports hits and misses to obs
func WithCacheObserver(obs CacheObserver) CacheOption {
	return func(c *CachedLedgerClient) { c.observer = obs }
}

// WithCacheLogger sets the cache's logger
func WithCacheLogger(l zerolog.Logger) CacheOption {
	return func(c *CachedLedgerClient) { c.logger = l }
}

// NewCachedLedgerClient wraps next with a Redis list cache
func NewCachedLedgerClient(next services.LedgerClient, rdb redis.UniversalClient, ttl time.Duration, opts ...CacheOption) *CachedLedgerClient {
	c := &CachedLedgerClient{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		prefix: "arledger",
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CachedLedgerClient) versionKey() string {
	return c.prefix + ":list:version"
}

func (c *CachedLedgerClient) listKey(ctx context.Context, filter models.ReceivableFilter) (string, error) {
	version, err := c.rdb.Get(ctx, c.versionKey()).Result()
	if errors.Is(err, redis.Nil) {
		version = "0"
	} else if err != nil {
		return "", err
	}
	return c.prefix + ":list:" + version + ":" + filter.CacheKey(), nil
}

// ListReceivables serves from the cache when possible
func (c *CachedLedgerClient) ListReceivables(ctx context.Context, filter models.ReceivableFilter) ([]models.RawReceivable, error) {
	key, err := c.listKey(ctx, filter)
	if err != nil {
		c.logger.Warn().Err(err).Msg("list cache unavailable")
		return c.next.ListReceivables(ctx, filter)
	}

	cached, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var list []models.RawReceivable
		if err := json.Unmarshal(cached, &list); err == nil {
			c.observe(true)
			return list, nil
		}
		c.logger.Warn().Str("key", key).Msg("discarding unreadable cache entry")
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn().Err(err).Msg("list cache read failed")
	}
	c.observe(false)

	list, err := c.next.ListReceivables(ctx, filter)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(list)
	if err == nil {
		err = c.rdb.Set(ctx, key, payload, c.ttl).Err()
	}
	if err != nil {
		c.logger.Warn().Err(err).Msg("list cache write failed")
	}
	return list, nil
}

// RecordPayment forwards the mutation and invalidates cached lists
func (c *CachedLedgerClient) RecordPayment(ctx context.Context, id string, req models.PaymentRequest) (*models.RawReceivable, error) {
	defer c.invalidate(ctx)
	return c.next.RecordPayment(ctx, id, req)
}

// ApplyInterest forwards the mutation and invalidates cached lists
func (c *CachedLedgerClient) ApplyInterest(ctx context.Context, id string, req models.InterestRequest) (*models.RawReceivable, error) {
	defer c.invalidate(ctx)
	return c.next.ApplyInterest(ctx, id, req)
}

// CreateInstallmentPlan forwards the mutation and invalidates cached lists
func (c *CachedLedgerClient) CreateInstallmentPlan(ctx context.Context, id string, plan models.InstallmentPlan) (*models.RawInstallmentPlanResult, error) {
	defer c.invalidate(ctx)
	return c.next.CreateInstallmentPlan(ctx, id, plan)
}

// invalidate runs after every mutation attempt, failed ones included, since
// an ambiguous failure may still have changed the account
func (c *CachedLedgerClient) invalidate(ctx context.Context) {
	if err := c.rdb.Incr(context.WithoutCancel(ctx), c.versionKey()).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("list cache invalidation failed")
	}
}

func (c *CachedLedgerClient) observe(hit bool) {
	if c.observer != nil {
		c.observer.ObserveCacheLookup(hit)
	}
}
