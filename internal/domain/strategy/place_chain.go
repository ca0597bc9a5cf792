package strategy

import (
	"context"
	"fmt"
	"log"

	"goplanner/internal/domain/model"
)

// PlaceChain は戦略を順番に試し、最初に空でない結果を返した戦略を採用する
// 各戦略のエラーはログに記録して次の戦略へ進む
type PlaceChain struct {
	kind       model.PlaceKind
	strategies []PlaceStrategy
}

func NewPlaceChain(kind model.PlaceKind, strategies ...PlaceStrategy) *PlaceChain {
	return &PlaceChain{kind: kind, strategies: strategies}
}

func (c *PlaceChain) Name() string {
	return fmt.Sprintf("chain:%s", c.kind)
}

func (c *PlaceChain) Kind() model.PlaceKind {
	return c.kind
}

// FindPlaces は全戦略が空またはエラーの場合、空スライスを返す
func (c *PlaceChain) FindPlaces(ctx context.Context, query model.PlaceQuery) ([]model.PlaceCandidate, error) {
	for _, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		places, err := s.FindPlaces(ctx, query)
		if err != nil {
			log.Printf("⚠️  %s: %s の取得に失敗: %v", c.Name(), s.Name(), err)
			continue
		}
		if len(places) == 0 {
			log.Printf("ℹ️  %s: %s は0件でした", c.Name(), s.Name())
			continue
		}

		for i := range places {
			places[i].Kind = c.kind
			if places[i].Source == "" {
				places[i].Source = s.Name()
			}
		}
		return places, nil
	}
	return []model.PlaceCandidate{}, nil
}
