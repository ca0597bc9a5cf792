package chatbot

import (
	"regexp"
	"strconv"
	"strings"

	"goplanner/internal/domain/model"
)

type intentRule struct {
	intent  model.ChatIntent
	pattern *regexp.Regexp
}

// 上から順に評価し、最初にマッチしたものを採用する
var intentRules = []intentRule{
	{model.IntentGreeting, regexp.MustCompile(`hi|hello|hey|namaste|start|begin`)},
	{model.IntentItinerary, regexp.MustCompile(`itinerary|plan|schedule|day.*day|trip.*plan`)},
	{model.IntentDestination, regexp.MustCompile(`destination|place|where|go|visit|travel`)},
	{model.IntentBudget, regexp.MustCompile(`budget|cost|price|expensive|cheap|affordable|money`)},
	{model.IntentWeather, regexp.MustCompile(`weather|climate|temperature|rain|sunny|cold|hot`)},
	{model.IntentPacking, regexp.MustCompile(`pack|packing|luggage|bag|what.*bring|carry`)},
	{model.IntentAttractions, regexp.MustCompile(`attraction|sightseeing|see|visit|monument|place.*see`)},
	{model.IntentRoute, regexp.MustCompile(`route|path|way|how.*reach|distance|between`)},
	{model.IntentFAQ, regexp.MustCompile(`faq|question|help|how|what|why|when`)},
	{model.IntentCost, regexp.MustCompile(`estimate|total|spend|expense`)},
}

var (
	budgetLowPattern  = regexp.MustCompile(`low|budget|cheap|affordable|economical`)
	budgetMidPattern  = regexp.MustCompile(`mid|medium|moderate|average`)
	budgetHighPattern = regexp.MustCompile(`high|luxury|premium|expensive`)

	daysPattern   = regexp.MustCompile(`(?i)(\d+)\s*days?`)
	numberPattern = regexp.MustCompile(`\d+`)

	travelTypePatterns = []struct {
		travelType string
		pattern    *regexp.Regexp
	}{
		{"beach", regexp.MustCompile(`beach|coast|island`)},
		{"mountain", regexp.MustCompile(`mountain|hill|trek`)},
		{"city", regexp.MustCompile(`city|urban`)},
		{"desert", regexp.MustCompile(`desert|sandy`)},
	}

	faqTopicPatterns = []struct {
		topic   string
		pattern *regexp.Regexp
	}{
		{"visa", regexp.MustCompile(`visa|passport`)},
		{"insurance", regexp.MustCompile(`insurance`)},
		{"currency", regexp.MustCompile(`currency|money|exchange`)},
		{"safety", regexp.MustCompile(`safety|safe|danger`)},
		{"booking", regexp.MustCompile(`book|booking|reserve`)},
	}
)

// DetectIntent はメッセージの意図を判定する
func DetectIntent(message string) model.ChatIntent {
	lower := strings.ToLower(message)
	for _, rule := range intentRules {
		if rule.pattern.MatchString(lower) {
			return rule.intent
		}
	}
	return model.IntentUnknown
}

// ExtractDestination は知識ベースにある目的地のキーを返す
func (k *Knowledge) ExtractDestination(message string) string {
	lower := strings.ToLower(message)
	for _, key := range k.DestinationOrder {
		dest := k.Destinations[key]
		if strings.Contains(lower, key) || strings.Contains(lower, strings.ToLower(dest.Name)) {
			return key
		}
	}
	return ""
}

// ExtractBudgetRange はメッセージから予算帯を読み取る
func ExtractBudgetRange(message string) BudgetRange {
	lower := strings.ToLower(message)
	switch {
	case budgetLowPattern.MatchString(lower):
		return BudgetRangeLow
	case budgetMidPattern.MatchString(lower):
		return BudgetRangeMid
	case budgetHighPattern.MatchString(lower):
		return BudgetRangeHigh
	}
	return ""
}

// ExtractDays は "3 days" のような表記から日数を取り出す。なければ0
func ExtractDays(message string) int {
	m := daysPattern.FindStringSubmatch(message)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// firstNumber はメッセージ中の最初の整数。なければ0
func firstNumber(message string) int {
	n, err := strconv.Atoi(numberPattern.FindString(message))
	if err != nil {
		return 0
	}
	return n
}

func detectTravelType(message string) string {
	lower := strings.ToLower(message)
	for _, tp := range travelTypePatterns {
		if tp.pattern.MatchString(lower) {
			return tp.travelType
		}
	}
	return "city"
}

func detectFAQTopic(message string) string {
	lower := strings.ToLower(message)
	for _, fp := range faqTopicPatterns {
		if fp.pattern.MatchString(lower) {
			return fp.topic
		}
	}
	return ""
}
