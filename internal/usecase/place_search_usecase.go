package usecase

import (
	"context"
	"fmt"
	"strings"

	"goplanner/internal/domain/model"
)

// MaxAutocompleteSize は補完候補の上限
const MaxAutocompleteSize = 20

// PlaceSearchProvider は目的地入力の補完と逆ジオコーディングを提供する
type PlaceSearchProvider interface {
	Autocomplete(ctx context.Context, text string, size int) ([]model.PlaceSuggestion, error)
	Reverse(ctx context.Context, at model.LatLng) (*model.ReversePlace, error)
}

type PlaceSearchUseCase interface {
	Autocomplete(ctx context.Context, text string, limit int) ([]model.PlaceSuggestion, error)
	// Reverse は該当なしの場合 ErrPlaceNotFound を返す
	Reverse(ctx context.Context, at model.LatLng) (*model.ReversePlace, error)
}

type placeSearchUseCaseImpl struct {
	provider PlaceSearchProvider
}

// NewPlaceSearchUseCase は新しいPlaceSearchUseCaseインスタンスを作成
func NewPlaceSearchUseCase(provider PlaceSearchProvider) PlaceSearchUseCase {
	return &placeSearchUseCaseImpl{provider: provider}
}

func (u *placeSearchUseCaseImpl) Autocomplete(ctx context.Context, text string, limit int) ([]model.PlaceSuggestion, error) {
	// 文字数不足やAPIキー未設定の判定はプロバイダ側で行う
	text = strings.TrimSpace(text)
	if limit > MaxAutocompleteSize {
		limit = MaxAutocompleteSize
	}

	suggestions, err := u.provider.Autocomplete(ctx, text, limit)
	if err != nil {
		return nil, fmt.Errorf("地名の補完に失敗: %w", err)
	}
	if suggestions == nil {
		suggestions = []model.PlaceSuggestion{}
	}
	return suggestions, nil
}

func (u *placeSearchUseCaseImpl) Reverse(ctx context.Context, at model.LatLng) (*model.ReversePlace, error) {
	if !at.IsValid() {
		return nil, fmt.Errorf("座標が範囲外です: %v", at)
	}
	place, err := u.provider.Reverse(ctx, at)
	if err != nil {
		return nil, fmt.Errorf("逆ジオコーディングに失敗: %w", err)
	}
	if place == nil {
		return nil, model.ErrPlaceNotFound
	}
	return place, nil
}
