package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"goplanner/internal/domain/repository"
)

// MemoryCache はプロセス内のgo-cacheを使ったキャッシュ
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache は既定TTLと掃除間隔を指定して作成する
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

var _ repository.SourceCacheRepository = (*MemoryCache)(nil)

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	return b, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.store.Set(key, value, ttl)
	return nil
}
