package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout はAPIで使う日付フォーマット
const DateLayout = "2006-01-02"

// MaxTripDays は1回の旅程生成で扱える最大日数
const MaxTripDays = 30

const secondsPerDay = 24 * 60 * 60

// ErrTripTooLong は旅行期間が MaxTripDays を超えている
var ErrTripTooLong = errors.New("trip is too long")

// BudgetTier は旅行とホテルで共通の予算帯
type BudgetTier string

const (
	BudgetLow  BudgetTier = "Low"
	BudgetMid  BudgetTier = "Mid"
	BudgetHigh BudgetTier = "High"
)

// 入力フォームの予算選択肢
const (
	BudgetUnder500     = "Under $500"
	Budget500To1000    = "$500 - $1,000"
	Budget1000To2500   = "$1,000 - $2,500"
	Budget2500To5000   = "$2,500 - $5,000"
	Budget5000To10000  = "$5,000 - $10,000"
	BudgetAbove10000   = "Above $10,000"
	DefaultBudgetRange = Budget1000To2500
)

var budgetTiers = map[string]BudgetTier{
	BudgetUnder500:    BudgetLow,
	Budget500To1000:   BudgetLow,
	Budget1000To2500:  BudgetMid,
	Budget2500To5000:  BudgetMid,
	Budget5000To10000: BudgetHigh,
	BudgetAbove10000:  BudgetHigh,
	string(BudgetLow):  BudgetLow,
	string(BudgetMid):  BudgetMid,
	string(BudgetHigh): BudgetHigh,
	"Budget":           BudgetLow,
	"Luxury":           BudgetHigh,
}

// BudgetOptions は表示順の予算選択肢を返す
func BudgetOptions() []string {
	return []string{
		BudgetUnder500,
		Budget500To1000,
		Budget1000To2500,
		Budget2500To5000,
		Budget5000To10000,
		BudgetAbove10000,
	}
}

// ParseBudgetTier は予算ラベルを予算帯に変換する
func ParseBudgetTier(label string) (BudgetTier, bool) {
	tier, ok := budgetTiers[strings.TrimSpace(label)]
	return tier, ok
}

// TripRequest は旅程作成フォームの入力
type TripRequest struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Budget      string   `json:"budget"`
	Interests   []string `json:"interests"`
}

// City は目的地の最初のカンマより前の部分
func (r *TripRequest) City() string {
	return CityName(r.Destination)
}

// CityName は自由入力の地名から最初のカンマより前を取り出す
func CityName(destination string) string {
	city, _, _ := strings.Cut(destination, ",")
	return strings.TrimSpace(city)
}

// DateRange は開始日と終了日をパースする
func (r *TripRequest) DateRange() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("startDate の形式が不正です: %w", err)
	}
	end, err := time.Parse(DateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("endDate の形式が不正です: %w", err)
	}
	return start, end, nil
}

// DayCount は ceil((end-start)/1日) + 1
func (r *TripRequest) DayCount() (int, error) {
	start, end, err := r.DateRange()
	if err != nil {
		return 0, err
	}
	return DayCountBetween(start, end)
}

// DayCountBetween は期間の日数（両端含む）を数える
// time.Duration は約292年で飽和するため秒単位で計算する
func DayCountBetween(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("endDate は startDate 以降の日付を指定してください")
	}
	secs := end.Unix() - start.Unix()
	days := (secs+secondsPerDay-1)/secondsPerDay + 1
	if days > MaxTripDays {
		return 0, fmt.Errorf("%w: 旅行期間は%d日以内で指定してください (%d日)", ErrTripTooLong, MaxTripDays, days)
	}
	return int(days), nil
}

// HasInterest は完全一致で興味タグを判定する
func (r *TripRequest) HasInterest(interest string) bool {
	return ContainsInterest(r.Interests, interest)
}

// ContainsInterest は興味タグの一覧に完全一致するものがあるか
func ContainsInterest(interests []string, interest string) bool {
	for _, i := range interests {
		if i == interest {
			return true
		}
	}
	return false
}

// BudgetTier は未知のラベルの場合Midを返す
func (r *TripRequest) BudgetTier() BudgetTier {
	if tier, ok := ParseBudgetTier(r.Budget); ok {
		return tier
	}
	return BudgetMid
}

// BudgetLabel は空の場合フォームの既定値を返す
func (r *TripRequest) BudgetLabel() string {
	if strings.TrimSpace(r.Budget) == "" {
		return DefaultBudgetRange
	}
	return r.Budget
}
