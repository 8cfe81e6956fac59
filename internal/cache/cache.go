// Package cache provides a two-tier cache for analysis results: an in-memory
// L1 bounded by entry count, and an optional Redis L2 that survives restarts.
// Cache failures are logged and treated as misses.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Defaults applied by New when Config leaves a field at zero.
const (
	DefaultTTL        = 15 * time.Minute
	DefaultMaxEntries = 1000
)

const keyPrefix = "ra:"

// Config configures a Tiered cache. An empty RedisURL disables L2.
type Config struct {
	RedisURL   string
	TTL        time.Duration
	MaxEntries int
}

// Tiered is an L1 memory + L2 Redis cache of JSON-encoded values.
type Tiered struct {
	l1         sync.Map // key -> *entry
	rdb        *redis.Client
	ttl        time.Duration
	maxEntries int
	logger     *zap.Logger
	now        func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// New builds a cache. If RedisURL is set but unusable, L2 is disabled and
// the cache runs in memory only.
func New(ctx context.Context, cfg Config, logger *zap.Logger) *Tiered {
	if logger == nil {
		logger = zap.NewNop()
	}
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Warn("cache: invalid redis URL, L2 disabled", zap.Error(err))
		} else {
			client := redis.NewClient(opts)
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := client.Ping(pingCtx).Err(); err != nil {
				logger.Warn("cache: redis unreachable, L2 disabled", zap.Error(err))
				_ = client.Close()
			} else {
				rdb = client
				logger.Info("cache: L2 redis connected", zap.String("addr", opts.Addr))
			}
		}
	}
	return NewWithClient(rdb, cfg.TTL, cfg.MaxEntries, logger)
}

// NewWithClient builds a cache around an existing Redis client, which may be nil.
func NewWithClient(rdb *redis.Client, ttl time.Duration, maxEntries int, logger *zap.Logger) *Tiered {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Tiered{rdb: rdb, ttl: ttl, maxEntries: maxEntries, logger: logger, now: time.Now}
}

// Key builds a deterministic cache key from parts.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return keyPrefix + hex.EncodeToString(sum[:16])
}

// AnalysisKey keys an analysis by the document hash and the fingerprint of
// the scoring configuration that produced it.
func AnalysisKey(documentHash, fingerprint string) string {
	return Key("analysis", documentHash, fingerprint)
}

// Get decodes the cached value for key into out. It reports whether a
// fresh entry was found.
func (c *Tiered) Get(ctx context.Context, key string, out any) bool {
	if val, ok := c.l1.Load(key); ok {
		e := val.(*entry)
		if c.now().Before(e.expiresAt) && json.Unmarshal(e.data, out) == nil {
			c.logger.Debug("cache: L1 hit", zap.String("key", key))
			c.hits.Add(1)
			return true
		}
		c.l1.Delete(key)
	}

	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			if json.Unmarshal(data, out) == nil {
				c.logger.Debug("cache: L2 hit", zap.String("key", key))
				c.hits.Add(1)
				c.store(key, data)
				return true
			}
		case !errors.Is(err, redis.Nil):
			c.logger.Warn("cache: L2 get failed", zap.String("key", key), zap.Error(err))
		}
	}

	c.misses.Add(1)
	return false
}

// Set stores value in both tiers.
func (c *Tiered) Set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache: encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	c.store(key, data)

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("cache: L2 set failed", zap.String("key", key), zap.Error(err))
		}
	}
}

func (c *Tiered) store(key string, data []byte) {
	c.evictIfNeeded()
	c.l1.Store(key, &entry{data: data, expiresAt: c.now().Add(c.ttl)})
}

// Stats returns hit and miss counters.
func (c *Tiered) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of L1 entries, including expired ones not yet swept.
func (c *Tiered) Len() int {
	n := 0
	c.l1.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// RunCleanup sweeps expired L1 entries every interval until ctx is done.
func (c *Tiered) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

// Close releases the Redis client.
func (c *Tiered) Close() error {
	if c.rdb == nil {
		return nil
	}
	if err := c.rdb.Close(); err != nil {
		return fmt.Errorf("cache: close redis: %w", err)
	}
	return nil
}

func (c *Tiered) removeExpired() int {
	now := c.now()
	removed := 0
	c.l1.Range(func(key, val any) bool {
		if e, ok := val.(*entry); ok && !now.Before(e.expiresAt) {
			c.l1.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// evictIfNeeded drops expired entries, then the oldest ones, until there is
// room for one more.
func (c *Tiered) evictIfNeeded() {
	count := c.Len()
	if count < c.maxEntries {
		return
	}
	count -= c.removeExpired()

	for count >= c.maxEntries {
		var oldestKey any
		var oldestAt time.Time
		c.l1.Range(func(key, val any) bool {
			e := val.(*entry)
			if oldestKey == nil || e.expiresAt.Before(oldestAt) {
				oldestKey, oldestAt = key, e.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			return
		}
		c.l1.Delete(oldestKey)
		count--
	}
}
