package cms_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

func TestCacheFactory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *cms.CacheConfig
		wantErr error
	}{
		{name: "nil config uses memory", config: nil},
		{name: "memory", config: &cms.CacheConfig{Type: cms.CacheTypeMemory, MaxSize: 5}},
		{name: "none", config: &cms.CacheConfig{Type: cms.CacheTypeNone}},
		{name: "nats without config", config: &cms.CacheConfig{Type: cms.CacheTypeNATS}, wantErr: cms.ErrNATSConfigRequired},
		{name: "redis without config", config: &cms.CacheConfig{Type: cms.CacheTypeRedis}, wantErr: cms.ErrRedisConfigRequired},
		{name: "unknown type", config: &cms.CacheConfig{Type: "disk"}, wantErr: cms.ErrUnsupportedCacheType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cache, err := cms.NewCacheFromConfig(tt.config)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, cache)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, cache)
		})
	}
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := cms.NewNoOpCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", &cms.CacheEntry{Data: []byte("v")}))

	_, err := cache.Get(ctx, "k")
	require.ErrorIs(t, err, cms.ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "k"))
}

func TestRedisCache_ParsesURL(t *testing.T) {
	t.Parallel()

	_, err := cms.NewRedisCache(&cms.RedisCacheConfig{URL: "not a url"})
	require.Error(t, err)

	cache, err := cms.NewRedisCache(&cms.RedisCacheConfig{URL: "redis://127.0.0.1:6379/2"})
	require.NoError(t, err)
	assert.NoError(t, cache.Close())
}

func TestParseCacheURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    *cms.CacheConfig
		wantErr error
	}{
		{raw: "", want: &cms.CacheConfig{Type: cms.CacheTypeNone}},
		{raw: "none", want: &cms.CacheConfig{Type: cms.CacheTypeNone}},
		{raw: "Memory", want: cms.DefaultCacheConfig()},
		{raw: "memory://?size=500", want: &cms.CacheConfig{Type: cms.CacheTypeMemory, MaxSize: 500}},
		{
			raw: "redis://127.0.0.1:6379/2?prefix=site:&tiered=1",
			want: &cms.CacheConfig{
				Type:   cms.CacheTypeRedis,
				Tiered: true,
				Redis:  &cms.RedisCacheConfig{URL: "redis://127.0.0.1:6379/2", Prefix: "site:"},
			},
		},
		{
			raw: "nats://127.0.0.1:4222?bucket=pages&ttl=10m",
			want: &cms.CacheConfig{
				Type: cms.CacheTypeNATS,
				NATS: &cms.NATSKVConfig{URL: "nats://127.0.0.1:4222", Bucket: "pages", TTL: 10 * time.Minute},
			},
		},
		{raw: "nats://127.0.0.1:4222?ttl=soon", wantErr: cms.ErrInvalidCacheURL},
		{raw: "memory://?size=lots", wantErr: cms.ErrInvalidCacheURL},
		{raw: "127.0.0.1:6379", wantErr: cms.ErrInvalidCacheURL},
		{raw: "memcached://127.0.0.1", wantErr: cms.ErrUnsupportedCacheType},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, err := cms.ParseCacheURL(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCacheFactory_Tiered(t *testing.T) {
	t.Parallel()

	config, err := cms.ParseCacheURL("redis://127.0.0.1:6379/2?tiered=true&size=10")
	require.NoError(t, err)

	cache, err := cms.NewCacheFromConfig(config)
	require.NoError(t, err)

	chain, ok := cache.(*cms.CacheChain)
	require.True(t, ok, "tiered config builds a chain")
	assert.NoError(t, chain.Close())
}

func TestCacheChain(t *testing.T) {
	t.Parallel()

	l1 := cms.NewMemoryCache(10)
	l2 := cms.NewMemoryCache(100)
	chain := cms.NewCacheChain(l1, nil, l2)
	ctx := context.Background()

	entry := &cms.CacheEntry{Data: []byte("chain test"), ExpiresAt: time.Now().Add(time.Hour)}

	require.NoError(t, chain.Set(ctx, "chain-key", entry))
	assert.True(t, l1.Has(ctx, "chain-key"))
	assert.True(t, l2.Has(ctx, "chain-key"))

	require.NoError(t, l1.Delete(ctx, "chain-key"))

	got, err := chain.Get(ctx, "chain-key")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, got.Data)
	assert.True(t, l1.Has(ctx, "chain-key"), "L2 hit is written back to L1")

	require.NoError(t, chain.Delete(ctx, "chain-key"))
	assert.False(t, chain.Has(ctx, "chain-key"))

	_, err = chain.Get(ctx, "chain-key")
	require.ErrorIs(t, err, cms.ErrKeyNotFoundInAnyCache)
}
