package model

import "errors"

var (
	// ErrDestinationNotResolvable はどのジオコーダーでも目的地を解決できなかった
	ErrDestinationNotResolvable = errors.New("destination not resolvable")
	// ErrAggregationFailed は集約処理中の予期しない失敗
	ErrAggregationFailed = errors.New("itinerary aggregation failed")

	ErrItineraryNotFound   = errors.New("itinerary not found")
	ErrTripNotFound        = errors.New("trip not found")
	ErrDayNotFound         = errors.New("day not found")
	ErrActivityNotFound    = errors.New("activity not found")
	ErrInvalidMove         = errors.New("invalid activity move")
	ErrInvalidActivityType = errors.New("invalid activity type")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrPlaceNotFound       = errors.New("place not found")
)
