package model

import (
	"github.com/paulmach/orb"
)

// LatLng は緯度経度（度）
type LatLng struct {
	Lat float64 `json:"lat" firestore:"lat"`
	Lng float64 `json:"lng" firestore:"lng"`
}

// Point はorbの[lng, lat]順のPointに変換する
func (l LatLng) Point() orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

// LatLngFromPoint はorb.PointからLatLngを生成する
func LatLngFromPoint(p orb.Point) LatLng {
	return LatLng{Lat: p.Lat(), Lng: p.Lon()}
}

// IsValid はWGS84の範囲内かどうかを返す
func (l LatLng) IsValid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// GeoLocation はジオコーディング済みの目的地
type GeoLocation struct {
	Lat         float64 `json:"lat" firestore:"lat"`
	Lng         float64 `json:"lng" firestore:"lng"`
	Country     string  `json:"country,omitempty" firestore:"country"`
	DisplayName string  `json:"displayName,omitempty" firestore:"display_name"`
}

// LatLng は名称情報を除いた座標を返す
func (g *GeoLocation) LatLng() LatLng {
	return LatLng{Lat: g.Lat, Lng: g.Lng}
}

// PlaceKind は候補の種類
type PlaceKind string

const (
	PlaceKindAttraction PlaceKind = "attraction"
	PlaceKindRestaurant PlaceKind = "restaurant"
	PlaceKindHotel      PlaceKind = "hotel"
)

// PlaceCandidate はあらゆるスポット検索結果を正規化したもの
// 取得元が持たない項目は空のままになる
type PlaceCandidate struct {
	Name        string     `json:"name"`
	Kind        PlaceKind  `json:"kind"`
	Description string     `json:"description,omitempty"`
	Rating      string     `json:"rating"`
	Address     string     `json:"address"`
	Coordinates LatLng     `json:"coordinates"`
	Category    string     `json:"category"`
	Stars       string     `json:"stars,omitempty"`
	Cuisine     string     `json:"cuisine,omitempty"`
	Website     string     `json:"website,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	BudgetTier  BudgetTier `json:"budgetTier,omitempty"`
	Source      string     `json:"source,omitempty"`
}

// PlaceQuery はスポット検索戦略に渡す検索条件
type PlaceQuery struct {
	Destination string
	City        string
	Center      LatLng
	Budget      BudgetTier
}

// PlaceSuggestion は目的地入力のオートコンプリート候補
type PlaceSuggestion struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"fullName"`
	Coordinates LatLng `json:"coordinates"`
	Country     string `json:"country"`
	Locality    string `json:"locality"`
	Region      string `json:"region"`
	Type        string `json:"type"`
}

// ReversePlace は逆ジオコーディングの結果
type ReversePlace struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	Locality    string `json:"locality"`
	Coordinates LatLng `json:"coordinates"`
}
