package strategy

import (
	"context"

	"goplanner/internal/domain/model"
)

// PlaceStrategy は1つのデータソースからスポット候補を取得する戦略のインターフェース
type PlaceStrategy interface {
	// Name はログやメトリクスに使う戦略名
	Name() string
	// FindPlaces は検索条件に合うスポット候補を返す
	// 見つからない場合は空スライスを返し、エラーにはしない
	FindPlaces(ctx context.Context, query model.PlaceQuery) ([]model.PlaceCandidate, error)
}

// GeocodeStrategy は地名を座標に解決する戦略のインターフェース
type GeocodeStrategy interface {
	Name() string
	// Geocode は解決できなかった場合 (nil, nil) を返す
	Geocode(ctx context.Context, query string) (*model.GeoLocation, error)
}

// DescriptionStrategy はスポットの説明文を取得する戦略のインターフェース
type DescriptionStrategy interface {
	Name() string
	// Describe は説明文がない場合 ("", nil) を返す
	Describe(ctx context.Context, placeName, destination string) (string, error)
}
