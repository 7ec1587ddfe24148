package cms

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/PebblesProgramming/miso-headless-cms-core/internal/constants"
)

// NATSKVConfig configures a NATSKVCache.
type NATSKVConfig struct {
	// URL of the NATS server. Ignored when Conn is set.
	URL string
	// Conn is an existing connection to reuse. The cache does not close it.
	Conn *nats.Conn
	// Bucket is the KV bucket name. Empty means "cms_cache".
	Bucket string
	// TTL applies to every key of a bucket created by the cache.
	TTL time.Duration
}

// NATSKVCache stores entries in a JetStream key-value bucket, sharing the
// cache between processes.
type NATSKVCache struct {
	conn    *nats.Conn
	ownConn bool
	kv      nats.KeyValue
}

// NewNATSKVCache connects to NATS and opens, or creates, the bucket.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil {
		return nil, ErrNATSConfigRequired
	}

	conn := config.Conn
	ownConn := false

	if conn == nil {
		var err error

		conn, err = nats.Connect(config.URL, nats.Name("cms-cache"))
		if err != nil {
			return nil, fmt.Errorf("connecting to NATS: %w", err)
		}

		ownConn = true
	}

	kv, err := openBucket(conn, config)
	if err != nil {
		if ownConn {
			conn.Close()
		}

		return nil, err
	}

	return &NATSKVCache{conn: conn, ownConn: ownConn, kv: kv}, nil
}

func openBucket(conn *nats.Conn, config *NATSKVConfig) (nats.KeyValue, error) {
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("opening JetStream context: %w", err)
	}

	bucket := config.Bucket
	if bucket == "" {
		bucket = constants.DefaultNATSBucket
	}

	kv, err := js.KeyValue(bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket:      bucket,
			Description: "CMS API response cache",
			TTL:         config.TTL,
		})
	}

	if err != nil {
		return nil, fmt.Errorf("opening KV bucket %q: %w", bucket, err)
	}

	return kv, nil
}

// natsKey maps a cache key to a valid KV key.
func natsKey(key string) string {
	sum := sha256.Sum256([]byte(key))

	return hex.EncodeToString(sum[:])
}

// Get implements Cache.Get.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	kvEntry, err := c.kv.Get(natsKey(key))
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, ErrCacheKeyNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("reading cache entry: %w", err)
	}

	var entry CacheEntry

	err = json.Unmarshal(kvEntry.Value(), &entry)
	if err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}

	if entry.Expired() {
		return &entry, ErrCacheExpired
	}

	return &entry, nil
}

// Set implements Cache.Set.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	_, err = c.kv.Put(natsKey(key), data)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}

	return nil
}

// Delete implements Cache.Delete.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(natsKey(key))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting cache entry: %w", err)
	}

	return nil
}

// Clear implements Cache.Clear.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if errors.Is(err, nats.ErrNoKeysFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("listing cache keys: %w", err)
	}

	for _, key := range keys {
		err = c.kv.Delete(key)
		if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
			return fmt.Errorf("deleting cache entry: %w", err)
		}
	}

	return nil
}

// Has implements Cache.Has.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close releases the connection when the cache opened it.
func (c *NATSKVCache) Close() {
	if c.ownConn {
		c.conn.Close()
	}
}
