package ai

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func TestGeminiTextRepository_DescribePlace(t *testing.T) {
	t.Run("引用符と空白を除いて返す", func(t *testing.T) {
		gen := new(mockGenerator)
		gen.On("GenerateText", mock.Anything, mock.MatchedBy(func(p string) bool {
			return strings.Contains(p, `"Louvre" in Paris`)
		})).Return("  \"A world-famous art museum.\"\n", nil)

		got, err := NewGeminiTextRepository(gen).DescribePlace(context.Background(), "Louvre", "Paris")
		require.NoError(t, err)
		assert.Equal(t, "A world-famous art museum.", got)
		gen.AssertExpectations(t)
	})

	t.Run("生成エラーはラップして返す", func(t *testing.T) {
		gen := new(mockGenerator)
		gen.On("GenerateText", mock.Anything, mock.Anything).Return("", errors.New("quota"))

		_, err := NewGeminiTextRepository(gen).DescribePlace(context.Background(), "Louvre", "Paris")
		assert.ErrorContains(t, err, "quota")
	})
}

func TestGeminiTextRepository_AnswerTravelQuestion(t *testing.T) {
	t.Run("空の回答はエラー", func(t *testing.T) {
		gen := new(mockGenerator)
		gen.On("GenerateText", mock.Anything, mock.Anything).Return("   ", nil)

		_, err := NewGeminiTextRepository(gen).AnswerTravelQuestion(context.Background(), "visa?")
		assert.Error(t, err)
	})
}

// 実際のGemini APIを呼ぶ統合テスト
func TestGeminiClient_Integration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY環境変数が設定されていません")
	}

	ctx := context.Background()
	client, err := NewGeminiClient(ctx, apiKey, os.Getenv("GEMINI_MODEL"))
	require.NoError(t, err)
	defer client.Close()

	text, err := NewGeminiTextRepository(client).DescribePlace(ctx, "Eiffel Tower", "Paris")
	require.NoError(t, err)
	t.Logf("生成結果: %s", text)
}
