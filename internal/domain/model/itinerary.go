package model

import "time"

// ActivityType はアクティビティ種別（固定語彙）
type ActivityType string

const (
	ActivitySightseeing   ActivityType = "sightseeing"
	ActivityDining        ActivityType = "dining"
	ActivityAccommodation ActivityType = "accommodation"
	ActivityShopping      ActivityType = "shopping"
	ActivityAdventure     ActivityType = "adventure"
	ActivityRelaxation    ActivityType = "relaxation"
	ActivityTransport     ActivityType = "transport"
)

// IsValid は語彙に含まれるかどうかを返す
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivitySightseeing, ActivityDining, ActivityAccommodation, ActivityShopping,
		ActivityAdventure, ActivityRelaxation, ActivityTransport:
		return true
	}
	return false
}

// ItinerarySource は実データを使ったかどうか
type ItinerarySource string

const (
	SourceLive     ItinerarySource = "live"
	SourceFallback ItinerarySource = "fallback"
)

type Activity struct {
	ID             string       `json:"id" firestore:"id"`
	Time           string       `json:"time" firestore:"time"`
	Activity       string       `json:"activity" firestore:"activity"`
	Location       string       `json:"location" firestore:"location"`
	Type           ActivityType `json:"type" firestore:"type"`
	Notes          string       `json:"notes" firestore:"notes"`
	Description    string       `json:"description,omitempty" firestore:"description,omitempty"`
	Coordinates    *LatLng      `json:"coordinates,omitempty" firestore:"coordinates,omitempty"`
	Rating         string       `json:"rating,omitempty" firestore:"rating,omitempty"`
	Order          int          `json:"order" firestore:"order"`
	HotelType      string       `json:"hotelType,omitempty" firestore:"hotel_type,omitempty"`
	Stars          string       `json:"stars,omitempty" firestore:"stars,omitempty"`
	RestaurantType string       `json:"restaurantType,omitempty" firestore:"restaurant_type,omitempty"`
}

// Weather は現在の天気
type Weather struct {
	Temperature int     `json:"temperature" firestore:"temperature"`
	Condition   string  `json:"condition" firestore:"condition"`
	Description string  `json:"description" firestore:"description"`
	Humidity    int     `json:"humidity" firestore:"humidity"`
	WindSpeed   float64 `json:"windSpeed" firestore:"wind_speed"`
}

type DayPlan struct {
	DayNumber  int        `json:"dayNumber" firestore:"day_number"`
	Date       string     `json:"date" firestore:"date"`
	Activities []Activity `json:"activities" firestore:"activities"`
	Weather    *Weather   `json:"weather" firestore:"weather"`
}

// Renumber は現在の並び順でorderを1..Nに振り直す
func (d *DayPlan) Renumber() {
	for i := range d.Activities {
		d.Activities[i].Order = i + 1
	}
}

// IndexOf はアクティビティの位置を返す。見つからなければ-1
func (d *DayPlan) IndexOf(activityID string) int {
	for i := range d.Activities {
		if d.Activities[i].ID == activityID {
			return i
		}
	}
	return -1
}

// Itinerary は1リクエスト分の複数日程の旅程
type Itinerary struct {
	Destination string          `json:"destination" firestore:"destination"`
	StartDate   string          `json:"startDate" firestore:"start_date"`
	EndDate     string          `json:"endDate" firestore:"end_date"`
	Budget      string          `json:"budget" firestore:"budget"`
	Interests   []string        `json:"interests" firestore:"interests"`
	Days        []DayPlan       `json:"itinerary" firestore:"days"`
	Coordinates *GeoLocation    `json:"coordinates" firestore:"coordinates"`
	Weather     *Weather        `json:"weather" firestore:"weather"`
	TotalDays   int             `json:"totalDays" firestore:"total_days"`
	Source      ItinerarySource `json:"source" firestore:"source"`
}

// Day は指定された日番号（1始まり）のDayPlanを返す
func (it *Itinerary) Day(dayNumber int) (*DayPlan, error) {
	for i := range it.Days {
		if it.Days[i].DayNumber == dayNumber {
			return &it.Days[i], nil
		}
	}
	return nil, ErrDayNotFound
}

// ItineraryDraft は編集・出力・保存のために一時保存される生成済み旅程
type ItineraryDraft struct {
	ID        string     `json:"id"`
	Itinerary *Itinerary `json:"itinerary"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// FirestoreItineraryDraft はFirestoreに保存する形式（TTLポリシー用にexpireAtを持つ）
type FirestoreItineraryDraft struct {
	Itinerary *Itinerary `firestore:"itinerary"`
	CreatedAt time.Time  `firestore:"createdAt"`
	ExpireAt  time.Time  `firestore:"expireAt"`
}

func (d *ItineraryDraft) ToFirestoreItineraryDraft() *FirestoreItineraryDraft {
	return &FirestoreItineraryDraft{
		Itinerary: d.Itinerary,
		CreatedAt: d.CreatedAt,
		ExpireAt:  d.ExpiresAt,
	}
}

func (f *FirestoreItineraryDraft) ToItineraryDraft(id string) *ItineraryDraft {
	return &ItineraryDraft{
		ID:        id,
		Itinerary: f.Itinerary,
		CreatedAt: f.CreatedAt,
		ExpiresAt: f.ExpireAt,
	}
}

// GenerateItineraryResponse は旅程生成APIのレスポンス
type GenerateItineraryResponse struct {
	ID        string     `json:"id"`
	Itinerary *Itinerary `json:"itinerary"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// AddActivityRequest は追加するアクティビティの初期値を上書きする
type AddActivityRequest struct {
	Time     string       `json:"time"`
	Activity string       `json:"activity"`
	Location string       `json:"location"`
	Type     ActivityType `json:"type"`
	Notes    string       `json:"notes"`
}

// UpdateActivityRequest は編集可能な項目（nilは変更なし）
type UpdateActivityRequest struct {
	Time     *string       `json:"time"`
	Activity *string       `json:"activity"`
	Location *string       `json:"location"`
	Type     *ActivityType `json:"type"`
	Notes    *string       `json:"notes"`
}

// ReorderRequest はアクティビティを1つ上下に、または別のアクティビティの位置へ移動する
type ReorderRequest struct {
	ActivityID string `json:"activityId"`
	Direction  string `json:"direction"`
	TargetID   string `json:"targetId"`
}
