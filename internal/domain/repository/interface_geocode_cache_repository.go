package repository

import (
	"context"

	"goplanner/internal/domain/model"
)

// GeocodeCacheRepository は地名から座標へのキャッシュ
// 未登録の場合は (nil, nil) を返す
type GeocodeCacheRepository interface {
	Get(ctx context.Context, query string) (*model.GeoLocation, error)
	Put(ctx context.Context, query string, location *model.GeoLocation) error
}
