package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripRequest_DayCount(t *testing.T) {
	t.Run("開始日と終了日が同じなら1日", func(t *testing.T) {
		req := TripRequest{StartDate: "2025-03-01", EndDate: "2025-03-01"}
		days, err := req.DayCount()
		require.NoError(t, err)
		assert.Equal(t, 1, days)
	})

	t.Run("3泊4日", func(t *testing.T) {
		req := TripRequest{StartDate: "2025-03-01", EndDate: "2025-03-04"}
		days, err := req.DayCount()
		require.NoError(t, err)
		assert.Equal(t, 4, days)
	})

	t.Run("月をまたぐ", func(t *testing.T) {
		req := TripRequest{StartDate: "2025-02-27", EndDate: "2025-03-02"}
		days, err := req.DayCount()
		require.NoError(t, err)
		assert.Equal(t, 4, days)
	})

	t.Run("終了日が開始日より前はエラー", func(t *testing.T) {
		req := TripRequest{StartDate: "2025-03-04", EndDate: "2025-03-01"}
		_, err := req.DayCount()
		assert.Error(t, err)
	})

	t.Run("うるう日をまたぐ", func(t *testing.T) {
		req := TripRequest{StartDate: "2024-02-28", EndDate: "2024-03-01"}
		days, err := req.DayCount()
		require.NoError(t, err)
		assert.Equal(t, 3, days)
	})

	t.Run("上限ちょうどの日数は許可", func(t *testing.T) {
		req := TripRequest{StartDate: "2025-03-01", EndDate: "2025-03-30"}
		days, err := req.DayCount()
		require.NoError(t, err)
		assert.Equal(t, MaxTripDays, days)
	})

	t.Run("上限を1日超えるとエラー", func(t *testing.T) {
		req := TripRequest{StartDate: "2025-03-01", EndDate: "2025-03-31"}
		_, err := req.DayCount()
		assert.ErrorIs(t, err, ErrTripTooLong)
	})

	t.Run("数百年にわたる期間もエラー", func(t *testing.T) {
		req := TripRequest{StartDate: "0001-01-01", EndDate: "9999-12-31"}
		_, err := req.DayCount()
		assert.ErrorIs(t, err, ErrTripTooLong)

		req = TripRequest{StartDate: "2000-01-01", EndDate: "2999-12-31"}
		_, err = req.DayCount()
		assert.ErrorIs(t, err, ErrTripTooLong)
	})

	t.Run("日付形式が不正", func(t *testing.T) {
		req := TripRequest{StartDate: "03/01/2025", EndDate: "2025-03-01"}
		_, err := req.DayCount()
		assert.Error(t, err)
	})
}

func TestTripRequest_City(t *testing.T) {
	assert.Equal(t, "Jaipur", (&TripRequest{Destination: " Jaipur , Rajasthan, India"}).City())
	assert.Equal(t, "Paris", (&TripRequest{Destination: "Paris"}).City())
	assert.Equal(t, "", (&TripRequest{Destination: ""}).City())
}

func TestParseBudgetTier(t *testing.T) {
	cases := map[string]BudgetTier{
		"Under $500":       BudgetLow,
		"$500 - $1,000":    BudgetLow,
		"$1,000 - $2,500":  BudgetMid,
		"$2,500 - $5,000":  BudgetMid,
		"$5,000 - $10,000": BudgetHigh,
		"Above $10,000":    BudgetHigh,
		"Low":              BudgetLow,
		"Mid":              BudgetMid,
		"High":             BudgetHigh,
		"Budget":           BudgetLow,
		"Luxury":           BudgetHigh,
	}
	for label, want := range cases {
		got, ok := ParseBudgetTier(label)
		assert.True(t, ok, label)
		assert.Equal(t, want, got, label)
	}

	_, ok := ParseBudgetTier("a lot")
	assert.False(t, ok)
}

func TestTripRequest_BudgetLabel(t *testing.T) {
	assert.Equal(t, DefaultBudgetRange, (&TripRequest{}).BudgetLabel())
	assert.Equal(t, "Luxury", (&TripRequest{Budget: "Luxury"}).BudgetLabel())
	assert.Equal(t, BudgetMid, (&TripRequest{}).BudgetTier())
}

func TestContainsInterest(t *testing.T) {
	assert.True(t, ContainsInterest([]string{InterestNature, InterestAdventure}, InterestAdventure))
	assert.False(t, ContainsInterest(nil, InterestAdventure))
}

func TestTripRequest_HasInterest(t *testing.T) {
	req := TripRequest{Interests: []string{"Shopping", "Nature"}}
	assert.True(t, req.HasInterest(InterestShopping))
	assert.False(t, req.HasInterest("shopping"))
	assert.False(t, req.HasInterest(InterestAdventure))
}
