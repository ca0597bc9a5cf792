package usecase

import (
	"context"
	"errors"
	"testing"

	"goplanner/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPlaceProvider struct {
	mock.Mock
}

func (m *mockPlaceProvider) Autocomplete(ctx context.Context, text string, size int) ([]model.PlaceSuggestion, error) {
	args := m.Called(ctx, text, size)
	s, _ := args.Get(0).([]model.PlaceSuggestion)
	return s, args.Error(1)
}

func (m *mockPlaceProvider) Reverse(ctx context.Context, at model.LatLng) (*model.ReversePlace, error) {
	args := m.Called(ctx, at)
	p, _ := args.Get(0).(*model.ReversePlace)
	return p, args.Error(1)
}

func TestPlaceSearchUseCase_Autocomplete(t *testing.T) {
	ctx := context.Background()

	t.Run("上限を超える件数は切り詰める", func(t *testing.T) {
		p := new(mockPlaceProvider)
		p.On("Autocomplete", mock.Anything, "Par", MaxAutocompleteSize).
			Return([]model.PlaceSuggestion{{Name: "Paris"}}, nil)

		got, err := NewPlaceSearchUseCase(p).Autocomplete(ctx, " Par ", 100)
		require.NoError(t, err)
		assert.Equal(t, "Paris", got[0].Name)
		p.AssertExpectations(t)
	})

	t.Run("nilは空配列にする", func(t *testing.T) {
		p := new(mockPlaceProvider)
		p.On("Autocomplete", mock.Anything, "P", 0).Return(nil, nil)

		got, err := NewPlaceSearchUseCase(p).Autocomplete(ctx, "P", 0)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("プロバイダのエラーは返す", func(t *testing.T) {
		p := new(mockPlaceProvider)
		p.On("Autocomplete", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("503"))

		_, err := NewPlaceSearchUseCase(p).Autocomplete(ctx, "Paris", 5)
		assert.ErrorContains(t, err, "503")
	})
}

func TestPlaceSearchUseCase_Reverse(t *testing.T) {
	ctx := context.Background()
	at := model.LatLng{Lat: 48.85, Lng: 2.35}

	t.Run("見つかった場所を返す", func(t *testing.T) {
		p := new(mockPlaceProvider)
		p.On("Reverse", mock.Anything, at).Return(&model.ReversePlace{Name: "Paris"}, nil)

		got, err := NewPlaceSearchUseCase(p).Reverse(ctx, at)
		require.NoError(t, err)
		assert.Equal(t, "Paris", got.Name)
	})

	t.Run("該当なしはErrPlaceNotFound", func(t *testing.T) {
		p := new(mockPlaceProvider)
		p.On("Reverse", mock.Anything, at).Return(nil, nil)

		_, err := NewPlaceSearchUseCase(p).Reverse(ctx, at)
		assert.ErrorIs(t, err, model.ErrPlaceNotFound)
	})

	t.Run("範囲外の座標は問い合わせない", func(t *testing.T) {
		p := new(mockPlaceProvider)
		_, err := NewPlaceSearchUseCase(p).Reverse(ctx, model.LatLng{Lat: 120, Lng: 0})
		assert.Error(t, err)
		p.AssertNotCalled(t, "Reverse", mock.Anything, mock.Anything)
	})
}
