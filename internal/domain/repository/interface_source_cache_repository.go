package repository

import (
	"context"
	"time"
)

// SourceCacheRepository は外部APIの取得結果をキー単位でキャッシュする
type SourceCacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
