package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"goplanner/internal/domain/model"
	"goplanner/internal/domain/repository"
)

// DefaultPlaceCacheTTL はスポット検索結果のキャッシュ期間
const DefaultPlaceCacheTTL = 30 * time.Minute

// CachedPlaceStrategy はスポット検索結果を (種類, 丸めた座標, 予算帯) 単位でキャッシュする
type CachedPlaceStrategy struct {
	kind  model.PlaceKind
	inner PlaceStrategy
	cache repository.SourceCacheRepository
	ttl   time.Duration
}

func NewCachedPlaceStrategy(kind model.PlaceKind, inner PlaceStrategy, cache repository.SourceCacheRepository, ttl time.Duration) *CachedPlaceStrategy {
	if ttl <= 0 {
		ttl = DefaultPlaceCacheTTL
	}
	return &CachedPlaceStrategy{kind: kind, inner: inner, cache: cache, ttl: ttl}
}

func (s *CachedPlaceStrategy) Name() string {
	return "cached:" + s.inner.Name()
}

// PlaceCacheKey はキャッシュキーを組み立てる
func PlaceCacheKey(kind model.PlaceKind, center model.LatLng, tier model.BudgetTier) string {
	return fmt.Sprintf("places:%s:%.3f:%.3f:%s", kind, center.Lat, center.Lng, tier)
}

func (s *CachedPlaceStrategy) FindPlaces(ctx context.Context, query model.PlaceQuery) ([]model.PlaceCandidate, error) {
	key := PlaceCacheKey(s.kind, query.Center, query.Budget)

	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Printf("⚠️  キャッシュ参照に失敗 (%s): %v", key, err)
	} else if ok {
		var cached []model.PlaceCandidate
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		log.Printf("⚠️  キャッシュの復元に失敗 (%s): %v", key, err)
	}

	places, err := s.inner.FindPlaces(ctx, query)
	if err != nil {
		return nil, err
	}
	// 空の結果はキャッシュしない
	if len(places) == 0 {
		return places, nil
	}

	data, err := json.Marshal(places)
	if err != nil {
		return places, nil
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		log.Printf("⚠️  キャッシュ保存に失敗 (%s): %v", key, err)
	}
	return places, nil
}
