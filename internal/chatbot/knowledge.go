package chatbot

import (
	_ "embed"
	"fmt"

	"goplanner/internal/domain/model"

	"gopkg.in/yaml.v3"
)

//go:embed knowledge.yaml
var knowledgeYAML []byte

// BudgetRange は low / mid / high
type BudgetRange string

const (
	BudgetRangeLow  BudgetRange = "low"
	BudgetRangeMid  BudgetRange = "mid"
	BudgetRangeHigh BudgetRange = "high"
)

// DestinationInfo は定型回答に使う目的地の情報
type DestinationInfo struct {
	Name        string              `yaml:"name"`
	Budget      map[BudgetRange]int `yaml:"budget"`
	Weather     string              `yaml:"weather"`
	BestTime    string              `yaml:"bestTime"`
	Attractions []string            `yaml:"attractions"`
	HiddenGems  []string            `yaml:"hiddenGems"`
	WeatherTips []string            `yaml:"weatherTips"`
	Itinerary   []model.CannedDay   `yaml:"itinerary"`
}

// Knowledge は起動時に一度だけ読み込む不変の知識ベース
type Knowledge struct {
	Destinations     map[string]DestinationInfo `yaml:"destinations"`
	DestinationOrder []string                   `yaml:"destinationOrder"`
	PackingLists     map[string][]string        `yaml:"packingLists"`
	FAQ              map[string]string          `yaml:"faq"`
}

// LoadKnowledge は埋め込まれたYAMLをパースする
func LoadKnowledge() (*Knowledge, error) {
	return ParseKnowledge(knowledgeYAML)
}

// ParseKnowledge はYAMLから知識ベースを組み立てる
func ParseKnowledge(data []byte) (*Knowledge, error) {
	var k Knowledge
	if err := yaml.Unmarshal(data, &k); err != nil {
		return nil, fmt.Errorf("知識ベースのパースに失敗: %w", err)
	}
	if len(k.Destinations) == 0 {
		return nil, fmt.Errorf("知識ベースに目的地がありません")
	}
	for _, key := range k.DestinationOrder {
		if _, ok := k.Destinations[key]; !ok {
			return nil, fmt.Errorf("destinationOrder に未定義の目的地があります: %s", key)
		}
	}
	return &k, nil
}

// CannedItinerary は目的地の定型旅程を最大days日分返す
func (k *Knowledge) CannedItinerary(destination string, days int) []model.CannedDay {
	dest, ok := k.Destinations[destination]
	if !ok {
		return nil
	}
	if days > len(dest.Itinerary) {
		days = len(dest.Itinerary)
	}
	if days < 0 {
		days = 0
	}
	return dest.Itinerary[:days]
}

// DestinationNames は表示順の目的地名
func (k *Knowledge) DestinationNames() []string {
	names := make([]string, 0, len(k.DestinationOrder))
	for _, key := range k.DestinationOrder {
		names = append(names, k.Destinations[key].Name)
	}
	return names
}
