package strategy

import (
	"context"
	"log"
	"strings"

	"goplanner/internal/domain/repository"
)

// DescriptionChain は最初に説明文を返した戦略を採用する
type DescriptionChain struct {
	strategies []DescriptionStrategy
}

func NewDescriptionChain(strategies ...DescriptionStrategy) *DescriptionChain {
	return &DescriptionChain{strategies: strategies}
}

func (c *DescriptionChain) Name() string {
	return "chain:description"
}

func (c *DescriptionChain) Describe(ctx context.Context, placeName, destination string) (string, error) {
	for _, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := s.Describe(ctx, placeName, destination)
		if err != nil {
			log.Printf("⚠️  %s で説明文の取得に失敗 (%s): %v", s.Name(), placeName, err)
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text, nil
		}
	}
	return "", nil
}

// generatedDescriptionStrategy は生成AIをDescriptionStrategyとして使うアダプター
type generatedDescriptionStrategy struct {
	generator repository.TextGenerationRepository
}

func NewGeneratedDescriptionStrategy(generator repository.TextGenerationRepository) DescriptionStrategy {
	return &generatedDescriptionStrategy{generator: generator}
}

func (s *generatedDescriptionStrategy) Name() string {
	return "gemini"
}

func (s *generatedDescriptionStrategy) Describe(ctx context.Context, placeName, destination string) (string, error) {
	return s.generator.DescribePlace(ctx, placeName, destination)
}
