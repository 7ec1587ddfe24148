package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/PebblesProgramming/miso-headless-cms-core/internal/constants"
)

// RedisCacheConfig configures a RedisCache.
type RedisCacheConfig struct {
	// URL is a redis:// connection string. Ignored when Client is set.
	URL string
	// Client is an existing client to reuse. The cache does not close it.
	Client redis.UniversalClient
	// Prefix namespaces keys. Empty means "cms:cache:".
	Prefix string
	// ScanBatchSize bounds each SCAN call made by Clear.
	ScanBatchSize int64
}

// RedisCache stores entries in Redis with a per-key expiry.
type RedisCache struct {
	db            redis.UniversalClient
	ownClient     bool
	prefix        string
	scanBatchSize int64
}

// NewRedisCache creates a Redis backed cache.
func NewRedisCache(config *RedisCacheConfig) (*RedisCache, error) {
	if config == nil {
		return nil, ErrRedisConfigRequired
	}

	client := config.Client
	ownClient := false

	if client == nil {
		opts, err := redis.ParseURL(config.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis URL: %w", err)
		}

		client = redis.NewClient(opts)
		ownClient = true
	}

	prefix := config.Prefix
	if prefix == "" {
		prefix = constants.DefaultRedisPrefix
	}

	batch := config.ScanBatchSize
	if batch <= 0 {
		batch = 100
	}

	return &RedisCache{db: client, ownClient: ownClient, prefix: prefix, scanBatchSize: batch}, nil
}

func (c *RedisCache) key(key string) string {
	return c.prefix + key
}

// Get implements Cache.Get.
func (c *RedisCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	data, err := c.db.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheKeyNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("reading cache entry: %w", err)
	}

	var entry CacheEntry

	err = json.Unmarshal(data, &entry)
	if err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}

	if entry.Expired() {
		return &entry, ErrCacheExpired
	}

	return &entry, nil
}

// Set implements Cache.Set. Entries without an ETag expire with the entry;
// entries with one are kept for revalidation.
func (c *RedisCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	var ttl time.Duration
	if entry.ETag == "" && !entry.ExpiresAt.IsZero() {
		ttl = time.Until(entry.ExpiresAt)
		if ttl <= 0 {
			return nil
		}
	}

	err = c.db.Set(ctx, c.key(key), data, ttl).Err()
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}

	return nil
}

// Delete implements Cache.Delete.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	err := c.db.Del(ctx, c.key(key)).Err()
	if err != nil {
		return fmt.Errorf("deleting cache entry: %w", err)
	}

	return nil
}

// Clear removes every key under the prefix using SCAN.
func (c *RedisCache) Clear(ctx context.Context) error {
	var cursor uint64

	for {
		batch, next, err := c.db.Scan(ctx, cursor, c.prefix+"*", c.scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("scanning cache keys: %w", err)
		}

		if len(batch) > 0 {
			err = c.db.Del(ctx, batch...).Err()
			if err != nil {
				return fmt.Errorf("deleting cache entries: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Has implements Cache.Has.
func (c *RedisCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close closes the client when the cache created it.
func (c *RedisCache) Close() error {
	if !c.ownClient {
		return nil
	}

	return c.db.Close()
}
