package cms

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PebblesProgramming/miso-headless-cms-core/internal/constants"
)

// CacheType names a cache backend.
type CacheType string

const (
	CacheTypeNone   CacheType = "none"
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
	CacheTypeNATS   CacheType = "nats"
)

// Static errors for err113 compliance.
var (
	ErrNATSConfigRequired    = errors.New("NATS configuration required for NATS cache")
	ErrRedisConfigRequired   = errors.New("redis configuration required for Redis cache")
	ErrUnsupportedCacheType  = errors.New("unsupported cache type")
	ErrCacheDisabled         = errors.New("cache disabled")
	ErrKeyNotFoundInAnyCache = errors.New("key not found in any cache")
	ErrInvalidCacheURL       = errors.New("invalid cache URL")
)

// CacheConfig selects and configures a cache backend.
type CacheConfig struct {
	Type CacheType
	// MaxSize bounds the memory cache, and the memory tier in front of a
	// remote backend. Zero uses the default.
	MaxSize int
	// Tiered puts a memory cache in front of a redis or nats backend.
	Tiered bool

	NATS  *NATSKVConfig
	Redis *RedisCacheConfig
}

// DefaultCacheConfig is a bounded memory cache.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{Type: CacheTypeMemory, MaxSize: constants.DefaultCacheSize}
}

// ParseCacheURL turns a cache location into a config:
//
//	none
//	memory                       memory://?size=500
//	redis://host:6379/0          rediss://... ?prefix=site:&tiered=1
//	nats://host:4222             ?bucket=cms_cache&ttl=10m&tiered=1
//
// Query parameters belong to the cache and are not passed to the server.
func ParseCacheURL(raw string) (*CacheConfig, error) {
	raw = strings.TrimSpace(raw)

	switch CacheType(strings.ToLower(raw)) {
	case "", CacheTypeNone:
		return &CacheConfig{Type: CacheTypeNone}, nil
	case CacheTypeMemory:
		return DefaultCacheConfig(), nil
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCacheURL, raw)
	}

	query := u.Query()
	u.RawQuery = ""

	config := &CacheConfig{Tiered: query.Get("tiered") == "1" || query.Get("tiered") == "true"}

	if size := query.Get("size"); size != "" {
		config.MaxSize, err = strconv.Atoi(size)
		if err != nil {
			return nil, fmt.Errorf("%w: size %q", ErrInvalidCacheURL, size)
		}
	}

	switch strings.ToLower(u.Scheme) {
	case "memory":
		config.Type = CacheTypeMemory
	case "redis", "rediss", "unix":
		config.Type = CacheTypeRedis
		config.Redis = &RedisCacheConfig{URL: u.String(), Prefix: query.Get("prefix")}
	case "nats", "tls":
		config.Type = CacheTypeNATS
		config.NATS = &NATSKVConfig{URL: u.String(), Bucket: query.Get("bucket")}

		if ttl := query.Get("ttl"); ttl != "" {
			config.NATS.TTL, err = time.ParseDuration(ttl)
			if err != nil {
				return nil, fmt.Errorf("%w: ttl %q", ErrInvalidCacheURL, ttl)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, u.Scheme)
	}

	return config, nil
}

// NewCacheFromConfig builds the configured backend. A nil config gives the
// default memory cache.
func NewCacheFromConfig(config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	size := config.MaxSize
	if size <= 0 {
		size = constants.DefaultCacheSize
	}

	var remote Cache

	switch config.Type {
	case CacheTypeNone:
		return NewNoOpCache(), nil
	case CacheTypeMemory:
		return NewMemoryCache(size), nil
	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		cache, err := NewNATSKVCache(config.NATS)
		if err != nil {
			return nil, err
		}

		remote = cache
	case CacheTypeRedis:
		if config.Redis == nil {
			return nil, ErrRedisConfigRequired
		}

		cache, err := NewRedisCache(config.Redis)
		if err != nil {
			return nil, err
		}

		remote = cache
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}

	if config.Tiered {
		return NewCacheChain(NewMemoryCache(size), remote), nil
	}

	return remote, nil
}

// NoOpCache never stores anything.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache { return &NoOpCache{} }

func (*NoOpCache) Get(context.Context, string) (*CacheEntry, error) { return nil, ErrCacheDisabled }
func (*NoOpCache) Set(context.Context, string, *CacheEntry) error { return nil }
func (*NoOpCache) Delete(context.Context, string) error { return nil }
func (*NoOpCache) Clear(context.Context) error { return nil }
func (*NoOpCache) Has(context.Context, string) bool { return false }

// CacheChain layers caches, fastest first. A hit in a lower tier is
// copied into the tiers above it; writes go to every tier.
type CacheChain struct {
	tiers []Cache
}

// NewCacheChain creates a chain. Nil tiers are skipped.
func NewCacheChain(tiers ...Cache) *CacheChain {
	chain := &CacheChain{}

	for _, tier := range tiers {
		if tier != nil {
			chain.tiers = append(chain.tiers, tier)
		}
	}

	return chain
}

// Get returns the entry of the first tier that holds the key.
func (c *CacheChain) Get(ctx context.Context, key string) (*CacheEntry, error) {
	for level, tier := range c.tiers {
		entry, err := tier.Get(ctx, key)
		if err != nil {
			continue
		}

		for _, upper := range c.tiers[:level] {
			_ = upper.Set(ctx, key, entry)
		}

		return entry, nil
	}

	return nil, ErrKeyNotFoundInAnyCache
}

func (c *CacheChain) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return c.each(func(tier Cache) error { return tier.Set(ctx, key, entry) })
}

func (c *CacheChain) Delete(ctx context.Context, key string) error {
	return c.each(func(tier Cache) error { return tier.Delete(ctx, key) })
}

func (c *CacheChain) Clear(ctx context.Context) error {
	return c.each(func(tier Cache) error { return tier.Clear(ctx) })
}

// Has reports whether any tier holds a live entry.
func (c *CacheChain) Has(ctx context.Context, key string) bool {
	for _, tier := range c.tiers {
		if tier.Has(ctx, key) {
			return true
		}
	}

	return false
}

// Close closes every tier that holds a connection.
func (c *CacheChain) Close() error {
	return c.each(func(tier Cache) error {
		switch closer := tier.(type) {
		case interface{ Close() error }:
			return closer.Close()
		case interface{ Close() }:
			closer.Close()
		}

		return nil
	})
}

// each applies fn to every tier and joins the failures.
func (c *CacheChain) each(fn func(Cache) error) error {
	var errs []error

	for _, tier := range c.tiers {
		if err := fn(tier); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
