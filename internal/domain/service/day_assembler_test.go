package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"goplanner/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlaces(prefix string, n int) []model.PlaceCandidate {
	places := make([]model.PlaceCandidate, 0, n)
	for i := 0; i < n; i++ {
		places = append(places, model.PlaceCandidate{
			Name:        fmt.Sprintf("%s %d", prefix, i),
			Address:     fmt.Sprintf("%d Main Street", i),
			Coordinates: model.LatLng{Lat: 26.9 + float64(i)/100, Lng: 75.8},
			Rating:      model.RatingNotAvailable,
			Category:    "Restaurant",
		})
	}
	return places
}

func assembleInput(days int, interests ...string) AssembleInput {
	return AssembleInput{
		Destination: "Jaipur, India",
		Interests:   interests,
		StartDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Days:        days,
		Attractions: samplePlaces("Fort", 4),
		Restaurants: samplePlaces("Cafe", 3),
		Hotels: []model.PlaceCandidate{{
			Name: "Hotel Pearl", Address: "MI Road", Stars: "3", Category: "hotel",
			Coordinates: model.LatLng{Lat: 26.91, Lng: 75.80},
		}},
		Weather: &model.Weather{Temperature: 28, Condition: "Clear"},
	}
}

func activityNames(day model.DayPlan) []string {
	out := make([]string, 0, len(day.Activities))
	for _, a := range day.Activities {
		out = append(out, a.Activity)
	}
	return out
}

func assertContiguous(t *testing.T, day model.DayPlan) {
	t.Helper()
	for i, a := range day.Activities {
		assert.Equal(t, i+1, a.Order)
		assert.Equal(t, fmt.Sprintf("%d-%d", day.DayNumber, i+1), a.ID)
	}
}

func TestDayAssembler_FullData(t *testing.T) {
	plans := NewDayAssembler().Assemble(assembleInput(3))
	require.Len(t, plans, 3)

	t.Run("日付と日番号", func(t *testing.T) {
		assert.Equal(t, "2025-03-01", plans[0].Date)
		assert.Equal(t, "2025-03-03", plans[2].Date)
		for i, p := range plans {
			assert.Equal(t, i+1, p.DayNumber)
			assertContiguous(t, p)
		}
	})

	t.Run("天気は1日目のみ", func(t *testing.T) {
		assert.NotNil(t, plans[0].Weather)
		assert.Nil(t, plans[1].Weather)
		assert.Nil(t, plans[2].Weather)
	})

	t.Run("1日目", func(t *testing.T) {
		assert.Equal(t, []string{"Check-in at Hotel Pearl", "Fort 0", "Dinner at Cafe 0"}, activityNames(plans[0]))
		checkIn := plans[0].Activities[0]
		assert.Equal(t, "12:00 PM", checkIn.Time)
		assert.Equal(t, "Complete check-in at Hotel Pearl (3 stars). Address: MI Road", checkIn.Notes)
		assert.Equal(t, model.ActivityAccommodation, checkIn.Type)
		assert.Equal(t, "3", checkIn.Stars)
		assert.Equal(t, "Visit Fort 0.", plans[0].Activities[1].Notes)
		assert.Equal(t, "Enjoy restaurant cuisine at Cafe 0", plans[0].Activities[2].Notes)
		assert.Equal(t, "7:00 PM", plans[0].Activities[2].Time)
	})

	t.Run("中日", func(t *testing.T) {
		assert.Equal(t, []string{
			"Breakfast at Cafe 1", "Fort 1", "Lunch break", "Fort 2", "Sunset point / Evening exploration",
		}, activityNames(plans[1]))
		assert.Equal(t, "Morning meal at Cafe 1", plans[1].Activities[0].Notes)
		assert.Equal(t, "Jaipur, India", plans[1].Activities[2].Location)
		assert.Nil(t, plans[1].Activities[2].Coordinates)
	})

	t.Run("最終日は2番目の飲食店と最後の観光地", func(t *testing.T) {
		assert.Equal(t, []string{"Breakfast at Cafe 1", "Visit Fort 3", "Checkout from Hotel Pearl"}, activityNames(plans[2]))
		assert.Equal(t, "Start your day with breakfast at Cafe 1", plans[2].Activities[0].Notes)
		assert.Equal(t, "Complete checkout from Hotel Pearl", plans[2].Activities[2].Notes)
		assert.Equal(t, "MI Road", plans[2].Activities[2].Location)
		assert.Equal(t, "hotel", plans[2].Activities[2].HotelType)
		assert.Nil(t, plans[2].Activities[2].Coordinates)
		assert.Empty(t, plans[2].Activities[2].Rating)
	})
}

func TestDayAssembler_Interests(t *testing.T) {
	plans := NewDayAssembler().Assemble(assembleInput(3, model.InterestShopping, model.InterestAdventure))

	mid := plans[1].Activities[3]
	assert.Equal(t, "Adventure activity", mid.Activity)
	assert.Equal(t, model.ActivityAdventure, mid.Type)
	assert.Equal(t, "4:00 PM", mid.Time)

	last := plans[2].Activities[1]
	assert.Equal(t, "Shopping and souvenir hunting", last.Activity)
	assert.Equal(t, model.ActivityShopping, last.Type)
	assert.Equal(t, "Buy souvenirs and local products", last.Notes)
}

func TestDayAssembler_NoData(t *testing.T) {
	in := assembleInput(3)
	in.Attractions = nil
	in.Restaurants = nil
	in.Hotels = nil
	in.Weather = nil

	plans := NewDayAssembler().Assemble(in)

	assert.Equal(t, []string{"Check-in at hotel", "Dinner recommendation"}, activityNames(plans[0]))
	assert.Equal(t, "Complete check-in and freshen up", plans[0].Activities[0].Notes)
	assert.Equal(t, []string{"Breakfast", "Lunch break", "Sunset point / Evening exploration"}, activityNames(plans[1]))
	assert.Equal(t, []string{"Breakfast", "Checkout"}, activityNames(plans[2]))

	for _, p := range plans {
		assertContiguous(t, p)
		for _, a := range p.Activities {
			assert.Equal(t, "Jaipur, India", a.Location)
			assert.Nil(t, a.Coordinates)
		}
	}
}

func TestDayAssembler_SingleDayUsesFirstDayRules(t *testing.T) {
	plans := NewDayAssembler().Assemble(assembleInput(1, model.InterestShopping))
	require.Len(t, plans, 1)
	assert.Equal(t, []string{"Check-in at Hotel Pearl", "Fort 0", "Dinner at Cafe 0"}, activityNames(plans[0]))
}

func TestDayAssembler_LastDayEdgeCases(t *testing.T) {
	in := assembleInput(2)
	in.Attractions = in.Attractions[:1]
	in.Restaurants = in.Restaurants[:1]

	plans := NewDayAssembler().Assemble(in)
	// 観光地が1件だけなら最終日の10時枠は省略、飲食店が1件なら先頭を使う
	assert.Equal(t, []string{"Breakfast at Cafe 0", "Checkout from Hotel Pearl"}, activityNames(plans[1]))
	assertContiguous(t, plans[1])
}

func TestDayAssembler_NotesTruncation(t *testing.T) {
	in := assembleInput(3)
	long := strings.Repeat("x", 300)
	for i := range in.Attractions {
		in.Attractions[i].Description = long
	}
	plans := NewDayAssembler().Assemble(in)

	assert.Equal(t, "Visit Fort 0. "+strings.Repeat("x", 100)+"...", plans[0].Activities[1].Notes)
	assert.Equal(t, strings.Repeat("x", 150)+"...", plans[1].Activities[1].Notes)
	assert.Equal(t, strings.Repeat("x", 100)+"...", plans[1].Activities[3].Notes)
	assert.Equal(t, long, plans[1].Activities[1].Description)
}

func TestDayAssembler_MiddleDayIndexClamps(t *testing.T) {
	in := assembleInput(5)
	in.Attractions = in.Attractions[:2]
	plans := NewDayAssembler().Assemble(in)

	// 4日目: min(3, 1) = 1 番目の観光地、その次はないので4時枠は省略
	assert.Equal(t, []string{
		"Breakfast at Cafe 2", "Fort 1", "Lunch break", "Sunset point / Evening exploration",
	}, activityNames(plans[3]))
	assertContiguous(t, plans[3])
}
