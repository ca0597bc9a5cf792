package service

import (
	"fmt"
	"strings"
	"time"

	"goplanner/internal/domain/helper"
	"goplanner/internal/domain/model"
)

// DayAssembler は取得済みのスポットから日ごとのスケジュールを組み立てる
// 外部呼び出しを行わない純粋な処理で、同じ入力には常に同じ結果を返す
type DayAssembler struct{}

func NewDayAssembler() *DayAssembler {
	return &DayAssembler{}
}

// AssembleInput は組み立てに必要な材料
type AssembleInput struct {
	Destination string
	Interests   []string
	StartDate   time.Time
	Days        int
	Attractions []model.PlaceCandidate
	Restaurants []model.PlaceCandidate
	Hotels      []model.PlaceCandidate
	Weather     *model.Weather
}

// Assemble は1日目・最終日・中日のルールで各日のアクティビティを組み立てる
// 1日だけの旅程は1日目のルールを使う
func (a *DayAssembler) Assemble(in AssembleInput) []model.DayPlan {
	plans := make([]model.DayPlan, 0, in.Days)
	for i := 0; i < in.Days; i++ {
		b := newDayBuilder(i+1, in.Destination)

		switch {
		case i == 0:
			a.firstDay(b, in)
		case i == in.Days-1:
			a.lastDay(b, in)
		default:
			a.middleDay(b, in, i)
		}

		plan := model.DayPlan{
			DayNumber:  i + 1,
			Date:       in.StartDate.AddDate(0, 0, i).Format(model.DateLayout),
			Activities: b.activities,
		}
		if i == 0 {
			plan.Weather = in.Weather
		}
		plans = append(plans, plan)
	}
	return plans
}

func (a *DayAssembler) firstDay(b *dayBuilder, in AssembleInput) {
	if len(in.Hotels) > 0 {
		hotel := in.Hotels[0]
		notes := fmt.Sprintf("Complete check-in at %s", hotel.Name)
		if hotel.Stars != "" {
			notes += fmt.Sprintf(" (%s stars)", hotel.Stars)
		}
		notes += "."
		if hotel.Address != "" {
			notes += " Address: " + hotel.Address
		}
		act := b.fromPlace(hotel, model.TimeCheckIn, "Check-in at "+hotel.Name, model.ActivityAccommodation, notes)
		act.HotelType = hotel.Category
		act.Stars = hotel.Stars
		b.add(act)
	} else {
		b.placeholder(model.TimeCheckIn, "Check-in at hotel", model.ActivityAccommodation, "Complete check-in and freshen up")
	}

	if len(in.Attractions) > 0 {
		first := in.Attractions[0]
		notes := strings.TrimSpace(fmt.Sprintf("Visit %s. %s", first.Name, shortNote(first.Description, model.ShortNoteChars)))
		act := b.fromPlace(first, model.TimeAfternoon, first.Name, model.ActivitySightseeing, notes)
		act.Description = first.Description
		b.add(act)
	}

	if len(in.Restaurants) > 0 {
		b.add(b.restaurant(in.Restaurants[0], model.TimeDinner, "Dinner at "+in.Restaurants[0].Name,
			fmt.Sprintf("Enjoy %s cuisine at %s", cuisineLabel(in.Restaurants[0]), in.Restaurants[0].Name)))
	} else {
		b.placeholder(model.TimeDinner, "Dinner recommendation", model.ActivityDining, "Try local cuisine")
	}
}

func (a *DayAssembler) lastDay(b *dayBuilder, in AssembleInput) {
	switch len(in.Restaurants) {
	case 0:
		b.placeholder(model.TimeBreakfast, "Breakfast", model.ActivityDining, "")
	default:
		r := in.Restaurants[0]
		if len(in.Restaurants) > 1 {
			r = in.Restaurants[1]
		}
		b.add(b.restaurant(r, model.TimeBreakfast, "Breakfast at "+r.Name, "Start your day with breakfast at "+r.Name))
	}

	switch {
	case model.ContainsInterest(in.Interests, model.InterestShopping):
		b.placeholder(model.TimeMorning, "Shopping and souvenir hunting", model.ActivityShopping, "Buy souvenirs and local products")
	case len(in.Attractions) >= 2:
		last := in.Attractions[len(in.Attractions)-1]
		act := b.fromPlace(last, model.TimeMorning, "Visit "+last.Name, model.ActivitySightseeing, shortNote(last.Description, model.ShortNoteChars))
		act.Description = last.Description
		b.add(act)
	}

	if len(in.Hotels) > 0 {
		hotel := in.Hotels[0]
		act := b.fromPlace(hotel, model.TimeCheckout, "Checkout from "+hotel.Name, model.ActivityAccommodation, "Complete checkout from "+hotel.Name)
		act.HotelType = hotel.Category
		// チェックアウトは地図に載せない
		act.Coordinates = nil
		act.Rating = ""
		b.add(act)
	} else {
		b.placeholder(model.TimeCheckout, "Checkout", model.ActivityAccommodation, "")
	}
}

func (a *DayAssembler) middleDay(b *dayBuilder, in AssembleInput, dayIndex int) {
	if len(in.Restaurants) > 0 {
		r := in.Restaurants[min(dayIndex, len(in.Restaurants)-1)]
		b.add(b.restaurant(r, model.TimeBreakfast, "Breakfast at "+r.Name, "Morning meal at "+r.Name))
	} else {
		b.placeholder(model.TimeBreakfast, "Breakfast", model.ActivityDining, "")
	}

	attractionIndex := min(dayIndex, len(in.Attractions)-1)
	if attractionIndex >= 0 {
		spot := in.Attractions[attractionIndex]
		act := b.fromPlace(spot, model.TimeMorning, spot.Name, model.ActivitySightseeing, shortNote(spot.Description, model.LongNoteChars))
		act.Description = spot.Description
		b.add(act)
	}

	b.placeholder(model.TimeAfternoon, "Lunch break", model.ActivityDining, "Take a break and enjoy local food")

	switch {
	case model.ContainsInterest(in.Interests, model.InterestAdventure):
		b.placeholder(model.TimeLate, "Adventure activity", model.ActivityAdventure, "Explore adventure activities in the area")
	case len(in.Attractions) > attractionIndex+1:
		spot := in.Attractions[attractionIndex+1]
		act := b.fromPlace(spot, model.TimeLate, spot.Name, model.ActivitySightseeing, shortNote(spot.Description, model.ShortNoteChars))
		act.Description = spot.Description
		b.add(act)
	}

	b.placeholder(model.TimeSunset, "Sunset point / Evening exploration", model.ActivitySightseeing, "Enjoy the sunset and evening views")
}

// dayBuilder は追加された順に "{日}-{連番}" のIDとorderを振る
type dayBuilder struct {
	dayNumber   int
	destination string
	activities  []model.Activity
}

func newDayBuilder(dayNumber int, destination string) *dayBuilder {
	return &dayBuilder{dayNumber: dayNumber, destination: destination, activities: []model.Activity{}}
}

func (b *dayBuilder) add(act model.Activity) {
	seq := len(b.activities) + 1
	act.ID = fmt.Sprintf("%d-%d", b.dayNumber, seq)
	act.Order = seq
	b.activities = append(b.activities, act)
}

func (b *dayBuilder) placeholder(timeLabel, name string, typ model.ActivityType, notes string) {
	b.add(model.Activity{
		Time:     timeLabel,
		Activity: name,
		Location: b.destination,
		Type:     typ,
		Notes:    notes,
	})
}

func (b *dayBuilder) fromPlace(p model.PlaceCandidate, timeLabel, name string, typ model.ActivityType, notes string) model.Activity {
	location := p.Address
	if location == "" {
		location = b.destination
	}
	coords := p.Coordinates
	return model.Activity{
		Time:        timeLabel,
		Activity:    name,
		Location:    location,
		Type:        typ,
		Notes:       notes,
		Coordinates: &coords,
		Rating:      p.Rating,
	}
}

func (b *dayBuilder) restaurant(r model.PlaceCandidate, timeLabel, name, notes string) model.Activity {
	act := b.fromPlace(r, timeLabel, name, model.ActivityDining, notes)
	act.RestaurantType = r.Category
	return act
}

func shortNote(description string, max int) string {
	if description == "" {
		return ""
	}
	return helper.TruncateWithEllipsis(description, max)
}

func cuisineLabel(r model.PlaceCandidate) string {
	if r.Category == "" {
		return "local"
	}
	return strings.ToLower(r.Category)
}
