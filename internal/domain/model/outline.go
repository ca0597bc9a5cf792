package model

// OutlineRequest はテーマ別アウトライン生成の入力
type OutlineRequest struct {
	Destination string   `json:"destination"`
	Duration    int      `json:"duration"`
	Budget      string   `json:"budget"`
	Interests   []string `json:"interests"`
}

type OutlineActivity struct {
	Time        string       `json:"time"`
	Activity    string       `json:"activity"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	Type        ActivityType `json:"type"`
}

type OutlineDay struct {
	DayNumber  int               `json:"dayNumber"`
	Theme      string            `json:"theme"`
	Activities []OutlineActivity `json:"activities"`
}

// Outline は保存しない下書き用の旅程アウトライン
type Outline struct {
	TripName    string       `json:"tripName"`
	Destination string       `json:"destination"`
	Summary     string       `json:"summary"`
	Days        []OutlineDay `json:"days"`
}

const (
	MinOutlineDays = 1
	MaxOutlineDays = 14
)
