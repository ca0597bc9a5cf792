package service

import (
	"fmt"
	"strings"

	"goplanner/internal/domain/model"
)

var baseThemes = []string{
	"Arrival & First Impressions",
	"Signature Sights",
	"Local Flavors",
	"Hidden Corners",
	"Views & Sunsets",
	"Day Trip & Nature",
	"Slow Morning, Long Night",
}

var defaultOutlineInterests = []string{"Sightseeing", "Food"}

// OutlineGenerator はテーマ別の旅程アウトラインを生成する（保存はしない）
type OutlineGenerator struct{}

func NewOutlineGenerator() *OutlineGenerator {
	return &OutlineGenerator{}
}

func (g *OutlineGenerator) Generate(req *model.OutlineRequest) *model.Outline {
	interests := req.Interests
	if len(interests) == 0 {
		interests = defaultOutlineInterests
	}
	dest := req.Destination

	summary := strings.Join([]string{
		fmt.Sprintf("A %d-day escape in %s, built around %s.", req.Duration, dest, strings.Join(interests, ", ")),
		"Days start with simple anchors so you’re never rushing, then build into one or two memorable set‑pieces.",
		budgetLine(req.Budget),
	}, " ")

	days := make([]model.OutlineDay, 0, req.Duration)
	for i := 0; i < req.Duration; i++ {
		primary := interests[i%len(interests)]
		secondary := interests[(i+1)%len(interests)]

		days = append(days, model.OutlineDay{
			DayNumber: i + 1,
			Theme:     pickTheme(i),
			Activities: []model.OutlineActivity{
				{
					Time:        "Morning",
					Activity:    "Easy start in " + dest,
					Description: fmt.Sprintf("Walk a calm neighborhood, grab coffee, and get a feel for %s before the day fills up.", dest),
					Location:    "Central " + dest,
					Type:        model.ActivityRelaxation,
				},
				{
					Time:        "Late Morning",
					Activity:    primary + "‑focused stop",
					Description: fmt.Sprintf("Spend a couple of hours leaning into %s. Pick a spot that instantly says “you’re really in %s now”.", strings.ToLower(primary), dest),
					Location:    fmt.Sprintf("%s, main %s area", dest, strings.ToLower(primary)),
					Type:        interestToType(primary),
				},
				{
					Time:        "Afternoon",
					Activity:    secondary + " detour",
					Description: fmt.Sprintf("Head somewhere with a different energy: a contrasting district, a market, a quiet viewpoint, or a gallery. Whatever matches your %s side.", strings.ToLower(secondary)),
					Location:    dest + ", contrasting neighborhood",
					Type:        interestToType(secondary),
				},
				{
					Time:        "Evening",
					Activity:    "Dinner & slow walk",
					Description: "Book a simple but memorable dinner spot, then walk it off through a well‑lit area. Think golden hour photos, street lights, and an easy route back to your stay.",
					Location:    dest + ", dinner street or waterfront",
					Type:        model.ActivityDining,
				},
				{
					Time:        "Night",
					Activity:    "Optional late‑night add‑on",
					Description: "If you still have energy, find one late‑night view, rooftop, or café. If not, this is simply your buffer to rest, pack, or journal the day.",
					Location:    dest + ", safe late‑night area",
					Type:        model.ActivityRelaxation,
				},
			},
		})
	}

	return &model.Outline{
		TripName:    fmt.Sprintf("%s • %d-Day Outline", dest, req.Duration),
		Destination: dest,
		Summary:     summary,
		Days:        days,
	}
}

func pickTheme(dayIndex int) string {
	if dayIndex < len(baseThemes) {
		return baseThemes[dayIndex]
	}
	return fmt.Sprintf("Day %d Highlights", dayIndex+1)
}

// interestToType は興味タグをアクティビティ種別に変換する
// 食事系は語彙に合わせて dining にする
func interestToType(interest string) model.ActivityType {
	lower := strings.ToLower(interest)
	switch {
	case strings.Contains(lower, "food"):
		return model.ActivityDining
	case strings.Contains(lower, "night"), strings.Contains(lower, "party"), strings.Contains(lower, "nature"):
		return model.ActivityRelaxation
	case strings.Contains(lower, "adventure"):
		return model.ActivityAdventure
	default:
		return model.ActivitySightseeing
	}
}

func budgetLine(budget string) string {
	switch budget {
	case "Budget":
		return "Most picks are wallet‑friendly spots loved by locals, with a few special splurges."
	case "Luxury":
		return "Expect elevated stays, tasting menus, and a bit of VIP energy in each day."
	default:
		return "A balanced mix of casual favorites and one‑or‑two memorable splurges."
	}
}
