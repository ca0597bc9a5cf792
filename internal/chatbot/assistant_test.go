package chatbot

import (
	"context"
	"errors"
	"testing"

	"goplanner/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTextRepo struct {
	mock.Mock
}

func (m *mockTextRepo) DescribePlace(ctx context.Context, placeName, destination string) (string, error) {
	args := m.Called(ctx, placeName, destination)
	return args.String(0), args.Error(1)
}

func (m *mockTextRepo) AnswerTravelQuestion(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

func loadKnowledge(t *testing.T) *Knowledge {
	t.Helper()
	k, err := LoadKnowledge()
	require.NoError(t, err)
	return k
}

func TestLoadKnowledge(t *testing.T) {
	k := loadKnowledge(t)

	assert.Len(t, k.Destinations, 4)
	assert.Equal(t, []string{"Jaipur", "Ooty", "Maldives", "Paris"}, k.DestinationNames())
	assert.Equal(t, 60000, k.Destinations["jaipur"].Budget[BudgetRangeHigh])
	assert.Len(t, k.PackingLists["beach"], 8)
	assert.Contains(t, k.FAQ["insurance"], "₹500-2000")

	t.Run("定型旅程は用意された日数で打ち切る", func(t *testing.T) {
		assert.Len(t, k.CannedItinerary("ooty", 5), 2)
		assert.Len(t, k.CannedItinerary("jaipur", 2), 2)
		assert.Nil(t, k.CannedItinerary("tokyo", 2))
	})

	t.Run("壊れたYAMLはエラー", func(t *testing.T) {
		_, err := ParseKnowledge([]byte("destinations: ["))
		assert.Error(t, err)
	})

	t.Run("順序に未定義の目的地があるとエラー", func(t *testing.T) {
		_, err := ParseKnowledge([]byte("destinations:\n  paris:\n    name: Paris\ndestinationOrder: [rome]\n"))
		assert.ErrorContains(t, err, "rome")
	})
}

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		message string
		want    model.ChatIntent
	}{
		{"Hello there", model.IntentGreeting},
		{"Create a plan for Jaipur", model.IntentItinerary},
		{"Tell me about Ooty destination", model.IntentDestination},
		{"What is the budget for Paris", model.IntentBudget},
		{"Tell me about paris weather", model.IntentWeather},
		{"packing list for the beach", model.IntentPacking},
		{"why visa", model.IntentFAQ},
		{"estimate total", model.IntentCost},
		{"xyz", model.IntentUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectIntent(tt.message))
		})
	}
}

func TestExtractors(t *testing.T) {
	k := loadKnowledge(t)

	assert.Equal(t, "maldives", k.ExtractDestination("Trip to the MALDIVES"))
	assert.Equal(t, "", k.ExtractDestination("Trip to Rome"))

	assert.Equal(t, BudgetRangeLow, ExtractBudgetRange("something cheap"))
	assert.Equal(t, BudgetRangeMid, ExtractBudgetRange("moderate please"))
	assert.Equal(t, BudgetRangeHigh, ExtractBudgetRange("luxury"))
	assert.Equal(t, BudgetRange(""), ExtractBudgetRange("anything"))

	assert.Equal(t, 4, ExtractDays("Plan 4 Days in Ooty"))
	assert.Equal(t, 1, ExtractDays("1day"))
	assert.Equal(t, 0, ExtractDays("no number"))
}

func TestAssistant_Reply(t *testing.T) {
	k := loadKnowledge(t)
	ctx := context.Background()

	t.Run("目的地の紹介", func(t *testing.T) {
		resp := NewAssistant(k, nil).Reply(ctx, &model.ChatRequest{Message: "Tell me about Ooty destination"})

		assert.Contains(t, resp.Response, "Great choice! Ooty")
		assert.Contains(t, resp.Response, "₹12,000")
		assert.Equal(t, "ooty", resp.Context.Destination)
		assert.Equal(t, "mid", resp.Context.BudgetRange)
		assert.Equal(t, model.IntentDestination, resp.Context.LastIntent)
	})

	t.Run("前回のコンテキストの日数で旅程を提案する", func(t *testing.T) {
		resp := NewAssistant(k, nil).Reply(ctx, &model.ChatRequest{
			Message: "Create a plan for Jaipur",
			Context: model.ChatContext{Days: 2},
		})

		assert.Contains(t, resp.Response, "Here's a 2-day itinerary for Jaipur")
		require.NotNil(t, resp.Suggestions)
		assert.Equal(t, "itinerary", resp.Suggestions.Type)
		assert.Equal(t, "jaipur", resp.Suggestions.Destination)
		assert.Len(t, resp.Suggestions.Data, 2)
	})

	t.Run("メッセージ中の日数は次回用にコンテキストへ入る", func(t *testing.T) {
		resp := NewAssistant(k, nil).Reply(ctx, &model.ChatRequest{Message: "Plan 4 days in Ooty"})

		assert.Contains(t, resp.Response, "Here's a 3-day itinerary for Ooty")
		assert.Equal(t, 4, resp.Context.Days)
	})

	t.Run("予算の内訳", func(t *testing.T) {
		resp := NewAssistant(k, nil).Reply(ctx, &model.ChatRequest{Message: "What is the budget for Paris"})

		assert.Equal(t, "low", resp.Context.BudgetRange)
		assert.Contains(t, resp.Response, "**Total**: ₹100,000")
		assert.Contains(t, resp.Response, "**Per Day**: ₹33,333")
		assert.Contains(t, resp.Response, "Accommodation (40%): ₹40,000")
	})

	t.Run("目的地はコンテキストから引き継ぐ", func(t *testing.T) {
		resp := NewAssistant(k, nil).Reply(ctx, &model.ChatRequest{
			Message: "how is the weather",
			Context: model.ChatContext{Destination: "maldives"},
		})

		assert.Contains(t, resp.Response, "Weather in Maldives")
		assert.Contains(t, resp.Response, "Light rain jacket (wet season)")
	})

	t.Run("持ち物リスト", func(t *testing.T) {
		resp := NewAssistant(k, nil).Reply(ctx, &model.ChatRequest{Message: "packing list for the beach"})

		assert.Contains(t, resp.Response, "Packing List for Beach Travel")
		assert.Contains(t, resp.Response, "1. Swimwear")
	})

	t.Run("FAQ", func(t *testing.T) {
		resp := NewAssistant(k, nil).Reply(ctx, &model.ChatRequest{Message: "why visa"})
		assert.Contains(t, resp.Response, "❓ **Visa**")
	})

	t.Run("不明な意図は生成AIが回答する", func(t *testing.T) {
		repo := new(mockTextRepo)
		repo.On("AnswerTravelQuestion", mock.Anything, "xyz").Return("Generated answer", nil)

		resp := NewAssistant(k, repo).Reply(ctx, &model.ChatRequest{Message: "xyz"})
		assert.Equal(t, "Generated answer", resp.Response)
		repo.AssertExpectations(t)
	})

	t.Run("生成AIが失敗したら定型文", func(t *testing.T) {
		repo := new(mockTextRepo)
		repo.On("AnswerTravelQuestion", mock.Anything, "xyz").Return("", errors.New("quota"))

		resp := NewAssistant(k, repo).Reply(ctx, &model.ChatRequest{Message: "xyz"})
		assert.Equal(t, defaultReply, resp.Response)
	})

	t.Run("生成AIがなければ定型文", func(t *testing.T) {
		resp := NewAssistant(k, nil).Reply(ctx, &model.ChatRequest{Message: "xyz"})
		assert.Equal(t, defaultReply, resp.Response)
		assert.Equal(t, model.IntentUnknown, resp.Context.LastIntent)
	})
}
