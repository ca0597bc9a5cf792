package service

import (
	"time"

	"goplanner/internal/domain/model"
)

// FallbackGenerator は外部データなしで必ず旅程を生成する
type FallbackGenerator struct {
	now func() time.Time
}

func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{now: time.Now}
}

// Generate は興味タグだけを使った簡易旅程を返す
// 日付が解釈できない場合は今日から1日分の旅程にする
func (g *FallbackGenerator) Generate(req *model.TripRequest) *model.Itinerary {
	start, end, err := req.DateRange()
	days := 1
	if err == nil {
		if n, err := model.DayCountBetween(start, end); err == nil {
			days = n
		}
	} else {
		start = g.now().UTC().Truncate(24 * time.Hour)
	}

	plans := make([]model.DayPlan, 0, days)
	for i := 0; i < days; i++ {
		b := newDayBuilder(i+1, req.Destination)
		switch {
		case i == 0:
			b.placeholder(model.TimeCheckIn, "Check-in at hotel", model.ActivityAccommodation, "")
			switch {
			case req.HasInterest(model.InterestTemples):
				b.placeholder(model.TimeAfternoon, "Visit local temple", model.ActivitySightseeing, "")
			case req.HasInterest(model.InterestBeaches):
				b.placeholder(model.TimeAfternoon, "Visit beach", model.ActivitySightseeing, "")
			default:
				b.placeholder(model.TimeAfternoon, "Explore local area", model.ActivitySightseeing, "")
			}
			b.placeholder(model.TimeDinner, "Dinner recommendation", model.ActivityDining, "Try local cuisine")
		case i == days-1:
			b.placeholder(model.TimeBreakfast, "Breakfast", model.ActivityDining, "")
			if req.HasInterest(model.InterestShopping) {
				b.placeholder(model.TimeMorning, "Shopping", model.ActivityShopping, "Buy souvenirs")
			} else {
				b.placeholder(model.TimeMorning, "Last minute exploration", model.ActivitySightseeing, "")
			}
			b.placeholder(model.TimeCheckout, "Checkout", model.ActivityAccommodation, "")
		default:
			b.placeholder(model.TimeBreakfast, "Breakfast", model.ActivityDining, "")
			switch {
			case req.HasInterest(model.InterestNature):
				b.placeholder(model.TimeMorning, "Visit nature spot", model.ActivitySightseeing, "")
			case req.HasInterest(model.InterestHistory):
				b.placeholder(model.TimeMorning, "Visit historical place", model.ActivitySightseeing, "")
			default:
				b.placeholder(model.TimeMorning, "Visit popular attraction", model.ActivitySightseeing, "")
			}
			b.placeholder(model.TimeAfternoon, "Lunch break", model.ActivityDining, "")
			if req.HasInterest(model.InterestAdventure) {
				b.placeholder(model.TimeLate, "Adventure activity", model.ActivityAdventure, "")
			} else {
				b.placeholder(model.TimeLate, "Visit another attraction", model.ActivitySightseeing, "")
			}
			b.placeholder(model.TimeSunset, "Sunset point", model.ActivitySightseeing, "")
		}

		plans = append(plans, model.DayPlan{
			DayNumber:  i + 1,
			Date:       start.AddDate(0, 0, i).Format(model.DateLayout),
			Activities: b.activities,
		})
	}

	return &model.Itinerary{
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.BudgetLabel(),
		Interests:   req.Interests,
		Days:        plans,
		TotalDays:   days,
		Source:      model.SourceFallback,
	}
}
