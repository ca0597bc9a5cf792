package model

// ChatIntent はチャットメッセージの意図
type ChatIntent string

const (
	IntentGreeting    ChatIntent = "greeting"
	IntentItinerary   ChatIntent = "itinerary"
	IntentDestination ChatIntent = "destination"
	IntentBudget      ChatIntent = "budget"
	IntentWeather     ChatIntent = "weather"
	IntentPacking     ChatIntent = "packing"
	IntentAttractions ChatIntent = "attractions"
	IntentRoute       ChatIntent = "route"
	IntentFAQ         ChatIntent = "faq"
	IntentCost        ChatIntent = "cost"
	IntentUnknown     ChatIntent = "unknown"
)

// ChatContext は会話をまたいで引き継ぐ状態
type ChatContext struct {
	Destination string     `json:"destination,omitempty"`
	BudgetRange string     `json:"budgetRange,omitempty"`
	LastIntent  ChatIntent `json:"lastIntent,omitempty"`
	LastMessage string     `json:"lastMessage,omitempty"`
	Days        int        `json:"days,omitempty"`
	TravelType  string     `json:"travelType,omitempty"`
}

type ChatRequest struct {
	Message string      `json:"message"`
	Context ChatContext `json:"context"`
}

// CannedActivity は定型旅程の1行
type CannedActivity struct {
	Time     string `json:"time" yaml:"time"`
	Activity string `json:"activity" yaml:"activity"`
}

// CannedDay は定型旅程の1日分
type CannedDay struct {
	Theme      string           `json:"theme" yaml:"theme"`
	Activities []CannedActivity `json:"activities" yaml:"activities"`
}

// ChatSuggestion はプランナーに取り込める提案
type ChatSuggestion struct {
	Type        string      `json:"type"`
	Data        []CannedDay `json:"data"`
	Destination string      `json:"destination"`
}

type ChatResponse struct {
	Response     string          `json:"response"`
	QuickReplies []string        `json:"quickReplies"`
	Context      ChatContext     `json:"context"`
	Suggestions  *ChatSuggestion `json:"suggestions"`
}
