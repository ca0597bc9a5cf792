package repository

import (
	"context"
)

// TextGenerationRepository は生成AIによる文章生成の責務を持つリポジトリインターフェース
type TextGenerationRepository interface {
	// DescribePlace はスポットの短い紹介文を生成する
	DescribePlace(ctx context.Context, placeName, destination string) (string, error)
	// AnswerTravelQuestion は旅行に関する自由質問に回答する
	AnswerTravelQuestion(ctx context.Context, message string) (string, error)
}
