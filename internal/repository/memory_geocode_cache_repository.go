package repository

import (
	"context"
	"log"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"goplanner/internal/domain/model"
	"goplanner/internal/domain/repository"
)

// LayeredGeocodeCacheRepository はプロセス内キャッシュを永続キャッシュ(任意)の前段に置く
type LayeredGeocodeCacheRepository struct {
	memory *gocache.Cache
	inner  repository.GeocodeCacheRepository
}

// NewLayeredGeocodeCacheRepository は inner が nil ならメモリのみで動作する
func NewLayeredGeocodeCacheRepository(ttl time.Duration, inner repository.GeocodeCacheRepository) repository.GeocodeCacheRepository {
	return &LayeredGeocodeCacheRepository{
		memory: gocache.New(ttl, ttl/2),
		inner:  inner,
	}
}

func (r *LayeredGeocodeCacheRepository) Get(ctx context.Context, query string) (*model.GeoLocation, error) {
	if v, ok := r.memory.Get(query); ok {
		loc := v.(model.GeoLocation)
		return &loc, nil
	}
	if r.inner == nil {
		return nil, nil
	}

	loc, err := r.inner.Get(ctx, query)
	if err != nil || loc == nil {
		return nil, err
	}
	r.memory.SetDefault(query, *loc)
	return loc, nil
}

func (r *LayeredGeocodeCacheRepository) Put(ctx context.Context, query string, location *model.GeoLocation) error {
	r.memory.SetDefault(query, *location)
	if r.inner == nil {
		return nil
	}
	if err := r.inner.Put(ctx, query, location); err != nil {
		// メモリには載っているので処理は続行
		log.Printf("⚠️ 永続ジオコードキャッシュへの保存に失敗: %v", err)
	}
	return nil
}
