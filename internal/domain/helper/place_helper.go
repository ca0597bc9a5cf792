package helper

import (
	"goplanner/internal/domain/model"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// DistanceMeters は2地点間の距離を計算する (m)
func DistanceMeters(p1, p2 model.LatLng) float64 {
	return geo.Distance(p1.Point(), p2.Point())
}

// SortByDistanceFromLocation は基準座標からの距離でスポットをソートする
func SortByDistanceFromLocation(origin model.LatLng, targets []model.PlaceCandidate) {
	sort.SliceStable(targets, func(i, j int) bool {
		return DistanceMeters(origin, targets[i].Coordinates) < DistanceMeters(origin, targets[j].Coordinates)
	})
}

// DedupeByName は同名スポットを先勝ちで除外する
func DedupeByName(places []model.PlaceCandidate) []model.PlaceCandidate {
	seen := make(map[string]struct{}, len(places))
	result := make([]model.PlaceCandidate, 0, len(places))
	for _, p := range places {
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, p)
	}
	return result
}

// Cap は先頭からn件に切り詰める
func Cap(places []model.PlaceCandidate, n int) []model.PlaceCandidate {
	if len(places) > n {
		return places[:n]
	}
	return places
}

// BoundOf は全地点を含む矩形を返す
func BoundOf(points ...model.LatLng) orb.Bound {
	mp := make(orb.MultiPoint, 0, len(points))
	for _, p := range points {
		mp = append(mp, p.Point())
	}
	return mp.Bound()
}
