package service

import (
	"strconv"
	"strings"

	"goplanner/internal/domain/model"
)

// HotelTierPolicy は宿泊施設の種別と星数から予算帯を判定する
type HotelTierPolicy struct {
	LowTypes     []string
	HighTypes    []string
	HighMinStars float64
	MidMinStars  float64
}

// DefaultHotelTierPolicy は hostel/guest_house/motel を Low、resort と4つ星以上を High とする
func DefaultHotelTierPolicy() HotelTierPolicy {
	return HotelTierPolicy{
		LowTypes:     []string{"hostel", "guest_house", "motel"},
		HighTypes:    []string{"resort"},
		HighMinStars: 4,
		MidMinStars:  2,
	}
}

// Classify は予算帯を返す。星数が解釈できない場合は Mid
func (p HotelTierPolicy) Classify(tourismType, stars string) model.BudgetTier {
	if containsFold(p.LowTypes, tourismType) {
		return model.BudgetLow
	}
	if containsFold(p.HighTypes, tourismType) {
		return model.BudgetHigh
	}

	stars = strings.TrimSpace(stars)
	if stars == "" {
		return model.BudgetLow
	}
	n, err := strconv.ParseFloat(strings.TrimRight(stars, "sS*"), 64)
	if err != nil {
		return model.BudgetMid
	}
	switch {
	case n >= p.HighMinStars:
		return model.BudgetHigh
	case n >= p.MidMinStars:
		return model.BudgetMid
	default:
		return model.BudgetLow
	}
}

// Accepts は希望予算帯に対してホテルの予算帯が許容されるかを返す
// Mid の場合は Low も許容する
func (p HotelTierPolicy) Accepts(requested, hotel model.BudgetTier) bool {
	switch requested {
	case model.BudgetLow:
		return hotel == model.BudgetLow
	case model.BudgetHigh:
		return hotel == model.BudgetHigh
	default:
		return hotel == model.BudgetMid || hotel == model.BudgetLow
	}
}

// Select は予算帯で絞り込んだ上位limit件を返す
// 1件も残らない場合は名前のある施設を先頭からlimit件返す
func (p HotelTierPolicy) Select(hotels []model.PlaceCandidate, requested model.BudgetTier, limit int) []model.PlaceCandidate {
	named := make([]model.PlaceCandidate, 0, len(hotels))
	for _, h := range hotels {
		if strings.TrimSpace(h.Name) == "" {
			continue
		}
		h.BudgetTier = p.Classify(h.Category, h.Stars)
		named = append(named, h)
	}

	selected := make([]model.PlaceCandidate, 0, limit)
	for _, h := range named {
		if len(selected) == limit {
			break
		}
		if p.Accepts(requested, h.BudgetTier) {
			selected = append(selected, h)
		}
	}
	if len(selected) > 0 {
		return selected
	}

	if len(named) > limit {
		named = named[:limit]
	}
	return named
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
