package service

import (
	"strings"
	"testing"

	"goplanner/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutlineGenerator_Generate(t *testing.T) {
	g := NewOutlineGenerator()

	t.Run("デフォルトの興味タグ", func(t *testing.T) {
		out := g.Generate(&model.OutlineRequest{Destination: "Lisbon", Duration: 2, Budget: "Budget"})

		assert.Equal(t, "Lisbon • 2-Day Outline", out.TripName)
		assert.True(t, strings.HasPrefix(out.Summary, "A 2-day escape in Lisbon, built around Sightseeing, Food."))
		assert.Contains(t, out.Summary, "wallet‑friendly")
		require.Len(t, out.Days, 2)

		day1 := out.Days[0]
		assert.Equal(t, "Arrival & First Impressions", day1.Theme)
		require.Len(t, day1.Activities, 5)
		assert.Equal(t, "Sightseeing‑focused stop", day1.Activities[1].Activity)
		assert.Equal(t, model.ActivitySightseeing, day1.Activities[1].Type)
		assert.Equal(t, "Food detour", day1.Activities[2].Activity)
		assert.Equal(t, model.ActivityDining, day1.Activities[2].Type)
		assert.Equal(t, model.ActivityDining, day1.Activities[3].Type)

		// 2日目は興味タグが入れ替わる
		assert.Equal(t, "Food‑focused stop", out.Days[1].Activities[1].Activity)
	})

	t.Run("8日目以降はHighlights", func(t *testing.T) {
		out := g.Generate(&model.OutlineRequest{Destination: "Kyoto", Duration: 9, Budget: "Luxury", Interests: []string{"Nightlife"}})
		assert.Equal(t, "Slow Morning, Long Night", out.Days[6].Theme)
		assert.Equal(t, "Day 8 Highlights", out.Days[7].Theme)
		assert.Equal(t, "Day 9 Highlights", out.Days[8].Theme)
		assert.Contains(t, out.Summary, "VIP energy")
		assert.Equal(t, model.ActivityRelaxation, out.Days[0].Activities[1].Type)
	})

	t.Run("その他の予算", func(t *testing.T) {
		out := g.Generate(&model.OutlineRequest{Destination: "Rome", Duration: 1, Budget: "Moderate"})
		assert.Contains(t, out.Summary, "balanced mix")
	})
}

func TestInterestToType(t *testing.T) {
	assert.Equal(t, model.ActivityDining, interestToType("Street Food"))
	assert.Equal(t, model.ActivityRelaxation, interestToType("Party"))
	assert.Equal(t, model.ActivityRelaxation, interestToType("Nature"))
	assert.Equal(t, model.ActivityAdventure, interestToType("Adventure"))
	assert.Equal(t, model.ActivitySightseeing, interestToType("History"))
	assert.Equal(t, model.ActivitySightseeing, interestToType("Shopping"))
}
