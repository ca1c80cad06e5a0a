package table

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ExportCache stores rendered exports by key.
type ExportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte)
}

// MemoryCache keeps the most recently rendered exports in process memory.
type MemoryCache struct {
	entries *lru.Cache[string, []byte]
}

func NewMemoryCache(size int) (*MemoryCache, error) {
	if size <= 0 {
		size = 1
	}
	entries, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{entries: entries}, nil
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	return c.entries.Get(key)
}

func (c *MemoryCache) Set(_ context.Context, key string, data []byte) {
	c.entries.Add(key, data)
}

func (c *MemoryCache) Len() int { return c.entries.Len() }

// BytesStore is a remote key/value store with expiry.
type BytesStore interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RemoteCache shares exports through a BytesStore. Lookups and writes are
// skipped while healthy reports false; store errors count as misses.
type RemoteCache struct {
	store   BytesStore
	ttl     time.Duration
	healthy *atomic.Bool
}

func NewRemoteCache(store BytesStore, ttl time.Duration, healthy *atomic.Bool) *RemoteCache {
	if healthy == nil {
		healthy = &atomic.Bool{}
		healthy.Store(true)
	}
	return &RemoteCache{store: store, ttl: ttl, healthy: healthy}
}

func (c *RemoteCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.healthy.Load() {
		return nil, false
	}
	data, err := c.store.GetBytes(ctx, key)
	if err != nil {
		slog.Warn("[ExportCache] Remote lookup failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, false
	}
	if data == nil {
		return nil, false
	}
	return data, true
}

func (c *RemoteCache) Set(ctx context.Context, key string, data []byte) {
	if !c.healthy.Load() {
		return
	}
	if err := c.store.SetBytes(ctx, key, data, c.ttl); err != nil {
		slog.Warn("[ExportCache] Remote write failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

// TieredCache consults each cache in order and fills the earlier tiers on a
// hit further down.
type TieredCache []ExportCache

func (c TieredCache) Get(ctx context.Context, key string) ([]byte, bool) {
	for i, tier := range c {
		if data, ok := tier.Get(ctx, key); ok {
			for _, earlier := range c[:i] {
				earlier.Set(ctx, key, data)
			}
			return data, true
		}
	}
	return nil, false
}

func (c TieredCache) Set(ctx context.Context, key string, data []byte) {
	for _, tier := range c {
		tier.Set(ctx, key, data)
	}
}
