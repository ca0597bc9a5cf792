package repository

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"goplanner/internal/domain/model"
)

// LocationToEWKT 目的地座標を PostGIS geography に渡せる EWKT に変換
func LocationToEWKT(location *model.GeoLocation) *string {
	if location == nil {
		return nil
	}
	point := orb.Point{location.Lng, location.Lat}
	s := "SRID=4326;" + wkt.MarshalString(point)
	return &s
}

// EWKTToLocation EWKT/WKT の POINT を座標に変換（解析できなければ nil）
func EWKTToLocation(s string) *model.LatLng {
	if len(s) > 10 && s[:10] == "SRID=4326;" {
		s = s[10:]
	}
	point, err := wkt.UnmarshalPoint(s)
	if err != nil {
		return nil
	}
	ll := model.LatLngFromPoint(point)
	return &ll
}

// TripDB trips テーブルの行
type TripDB struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	Destination string             `json:"destination"`
	StartDate   string             `json:"start_date"`
	EndDate     string             `json:"end_date"`
	Budget      string             `json:"budget"`
	Interests   []string           `json:"interests"`
	Itinerary   []model.DayPlan    `json:"itinerary"`
	Coordinates *model.GeoLocation `json:"coordinates"`
	Location    *string            `json:"location,omitempty"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
}

// TripToTripDB model.Trip を DB 保存用に変換
func TripToTripDB(trip *model.Trip) *TripDB {
	return &TripDB{
		ID:          trip.ID,
		UserID:      trip.UserID,
		Destination: trip.Destination,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		Budget:      trip.Budget,
		Interests:   trip.Interests,
		Itinerary:   trip.Itinerary,
		Coordinates: trip.Coordinates,
		Location:    LocationToEWKT(trip.Coordinates),
		Status:      trip.Status,
		CreatedAt:   trip.CreatedAt,
	}
}

// ToTrip DB の行を model.Trip に戻す
func (t *TripDB) ToTrip() model.Trip {
	trip := model.Trip{
		ID:          t.ID,
		UserID:      t.UserID,
		Destination: t.Destination,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Budget:      t.Budget,
		Interests:   t.Interests,
		Itinerary:   t.Itinerary,
		Coordinates: t.Coordinates,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
	}
	// coordinates 列が空でも location から復元する
	if trip.Coordinates == nil && t.Location != nil {
		if ll := EWKTToLocation(*t.Location); ll != nil {
			trip.Coordinates = &model.GeoLocation{Lat: ll.Lat, Lng: ll.Lng}
		}
	}
	return trip
}
