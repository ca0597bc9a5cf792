package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"goplanner/internal/domain/repository"
)

// geminiTextRepository はGemini APIを使用してTextGenerationRepositoryを実装
type geminiTextRepository struct {
	generator TextGenerator
}

// NewGeminiTextRepository は新しいgeminiTextRepositoryインスタンスを作成
func NewGeminiTextRepository(generator TextGenerator) repository.TextGenerationRepository {
	return &geminiTextRepository{generator: generator}
}

// DescribePlace はスポットの短い紹介文を生成する
func (g *geminiTextRepository) DescribePlace(ctx context.Context, placeName, destination string) (string, error) {
	log.Printf("🤖 Gemini APIで紹介文を生成中... (%s)", placeName)

	text, err := g.generator.GenerateText(ctx, buildDescriptionPrompt(placeName, destination))
	if err != nil {
		return "", fmt.Errorf("紹介文の生成に失敗: %w", err)
	}
	return cleanup(text), nil
}

// AnswerTravelQuestion は旅行に関する自由質問に回答する
func (g *geminiTextRepository) AnswerTravelQuestion(ctx context.Context, message string) (string, error) {
	log.Printf("🤖 Gemini APIでチャットに回答中...")

	text, err := g.generator.GenerateText(ctx, buildChatPrompt(message))
	if err != nil {
		return "", fmt.Errorf("チャット回答の生成に失敗: %w", err)
	}
	text = cleanup(text)
	if text == "" {
		return "", fmt.Errorf("空の回答が生成されました")
	}
	return text, nil
}

// buildDescriptionPrompt は旅程に載せる紹介文用のプロンプト
// 出力は英語（旅程本文と揃える）
func buildDescriptionPrompt(placeName, destination string) string {
	return fmt.Sprintf(`Write a factual two-sentence introduction for travellers about "%s" in %s.
Do not use markdown. Do not invent opening hours or prices. If you do not know the place, reply with an empty string.`,
		placeName, destination)
}

func buildChatPrompt(message string) string {
	return fmt.Sprintf(`You are GoPlanner, a friendly travel assistant.
Answer the traveller's question in at most four short sentences, without markdown headings.

Question: %s`, message)
}

// cleanup は前後の空白と引用符を取り除く
func cleanup(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"`)
	return strings.TrimSpace(text)
}
