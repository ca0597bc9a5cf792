package model

// スケジュールで使う時刻ラベル
const (
	TimeBreakfast = "9:00 AM"
	TimeMorning   = "10:00 AM"
	TimeCheckIn   = "12:00 PM"
	TimeCheckout  = "12:00 PM"
	TimeAfternoon = "2:00 PM"
	TimeLate      = "4:00 PM"
	TimeSunset    = "6:00 PM"
	TimeDinner    = "7:00 PM"
)

// スケジュールに影響する興味タグ
const (
	InterestShopping  = "Shopping"
	InterestAdventure = "Adventure"
	InterestTemples   = "Temples"
	InterestBeaches   = "Beaches"
	InterestNature    = "Nature"
	InterestHistory   = "History"
)

// TravelInterests はフォームで選べる興味タグ
func TravelInterests() []string {
	return []string{
		InterestNature, InterestBeaches, InterestTemples, InterestShopping, InterestAdventure,
		InterestHistory, "Food", "Art", "Nightlife", "Relaxation",
	}
}

// スポット検索の範囲と件数
const (
	AttractionRadiusMeters = 5000
	RestaurantRadiusMeters = 3000
	HotelRadiusMeters      = 5000

	MaxAttractions = 15
	MaxRestaurants = 12
	MaxHotels      = 5

	NameSearchLimit = 8

	// EnrichedAttractions は説明文を補完する観光地の件数
	EnrichedAttractions = 10
	MaxDescriptionChars = 200

	ShortNoteChars = 100
	LongNoteChars  = 150
)

// RatingNotAvailable は評価がない場合の値
const RatingNotAvailable = "N/A"
