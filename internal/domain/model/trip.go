package model

import "time"

// TripStatusPlanned は保存直後の旅行のステータス
const TripStatusPlanned = "planned"

// Trip はユーザーが保存した旅程
type Trip struct {
	ID          string       `json:"_id" bson:"_id"`
	UserID      string       `json:"userId" bson:"userId"`
	Destination string       `json:"destination" bson:"destination"`
	StartDate   string       `json:"startDate" bson:"startDate"`
	EndDate     string       `json:"endDate" bson:"endDate"`
	Budget      string       `json:"budget" bson:"budget"`
	Interests   []string     `json:"interests" bson:"interests"`
	Itinerary   []DayPlan    `json:"itinerary" bson:"itinerary"`
	Coordinates *GeoLocation `json:"coordinates" bson:"coordinates"`
	Status      string       `json:"status" bson:"status"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
}

// SaveTripRequest はドラフトIDまたは旅程そのものを受け取る
type SaveTripRequest struct {
	DraftID     string       `json:"draftId"`
	Destination string       `json:"destination"`
	StartDate   string       `json:"startDate"`
	EndDate     string       `json:"endDate"`
	Budget      string       `json:"budget"`
	Interests   []string     `json:"interests"`
	Itinerary   []DayPlan    `json:"itinerary"`
	Coordinates *GeoLocation `json:"coordinates"`
}

// TripListResponse はバックエンドの data.trips 形式
type TripListResponse struct {
	Trips []Trip `json:"trips"`
}

// Caller は操作しているユーザー
type Caller struct {
	UserID string
	Token  string
}
