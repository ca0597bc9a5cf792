package strategy

import (
	"context"
	"fmt"
	"log"
	"strings"

	"goplanner/internal/domain/model"
	"goplanner/internal/domain/repository"
)

// GeocodeChain はキャッシュ→各ジオコーダーの順に目的地を解決する
type GeocodeChain struct {
	cache      repository.GeocodeCacheRepository
	strategies []GeocodeStrategy
}

// NewGeocodeChain はキャッシュなし(nil)でも動作する
func NewGeocodeChain(cache repository.GeocodeCacheRepository, strategies ...GeocodeStrategy) *GeocodeChain {
	return &GeocodeChain{cache: cache, strategies: strategies}
}

// Resolve は地名を解決し、どの戦略でも解決できなければ model.ErrDestinationNotResolvable を返す
func (c *GeocodeChain) Resolve(ctx context.Context, query string) (*model.GeoLocation, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if key == "" {
		return nil, fmt.Errorf("空の地名: %w", model.ErrDestinationNotResolvable)
	}

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, key)
		if err != nil {
			log.Printf("⚠️  ジオコードキャッシュの参照に失敗: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	for _, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		location, err := s.Geocode(ctx, query)
		if err != nil {
			log.Printf("⚠️  %s によるジオコーディングに失敗: %v", s.Name(), err)
			continue
		}
		if location == nil {
			continue
		}

		if c.cache != nil {
			if err := c.cache.Put(ctx, key, location); err != nil {
				log.Printf("⚠️  ジオコードキャッシュへの保存に失敗: %v", err)
			}
		}
		log.Printf("📍 %s で座標を解決: %s (%.4f, %.4f)", s.Name(), query, location.Lat, location.Lng)
		return location, nil
	}

	return nil, fmt.Errorf("%s: %w", query, model.ErrDestinationNotResolvable)
}
