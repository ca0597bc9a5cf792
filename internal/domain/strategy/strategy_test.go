package strategy

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"goplanner/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubPlaceStrategy struct {
	name   string
	places []model.PlaceCandidate
	err    error
	calls  int
}

func (s *stubPlaceStrategy) Name() string { return s.name }

func (s *stubPlaceStrategy) FindPlaces(ctx context.Context, query model.PlaceQuery) ([]model.PlaceCandidate, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]model.PlaceCandidate, len(s.places))
	copy(out, s.places)
	return out, nil
}

type stubGeocoder struct {
	name     string
	location *model.GeoLocation
	err      error
	calls    int
}

func (s *stubGeocoder) Name() string { return s.name }

func (s *stubGeocoder) Geocode(ctx context.Context, query string) (*model.GeoLocation, error) {
	s.calls++
	return s.location, s.err
}

type memoryGeocodeCache struct {
	mu    sync.Mutex
	items map[string]*model.GeoLocation
}

func (c *memoryGeocodeCache) Get(ctx context.Context, query string) (*model.GeoLocation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[query], nil
}

func (c *memoryGeocodeCache) Put(ctx context.Context, query string, location *model.GeoLocation) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[query] = location
	return nil
}

type memorySourceCache struct {
	items map[string][]byte
}

func (c *memorySourceCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := c.items[key]
	return v, ok, nil
}

func (c *memorySourceCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.items[key] = value
	return nil
}

type mockTextGenerator struct {
	mock.Mock
}

func (m *mockTextGenerator) DescribePlace(ctx context.Context, placeName, destination string) (string, error) {
	args := m.Called(ctx, placeName, destination)
	return args.String(0), args.Error(1)
}

func (m *mockTextGenerator) AnswerTravelQuestion(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

func TestPlaceChain_FindPlaces(t *testing.T) {
	ctx := context.Background()
	query := model.PlaceQuery{Destination: "Jaipur", City: "Jaipur"}

	t.Run("最初に空でない結果を返した戦略を採用する", func(t *testing.T) {
		failing := &stubPlaceStrategy{name: "overpass", err: errors.New("504")}
		empty := &stubPlaceStrategy{name: "empty"}
		nominatim := &stubPlaceStrategy{name: "nominatim", places: []model.PlaceCandidate{{Name: "Amber Fort"}}}
		unused := &stubPlaceStrategy{name: "unused", places: []model.PlaceCandidate{{Name: "x"}}}

		chain := NewPlaceChain(model.PlaceKindAttraction, failing, empty, nominatim, unused)
		places, err := chain.FindPlaces(ctx, query)

		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "Amber Fort", places[0].Name)
		assert.Equal(t, model.PlaceKindAttraction, places[0].Kind)
		assert.Equal(t, "nominatim", places[0].Source)
		assert.Equal(t, 0, unused.calls)
	})

	t.Run("全戦略が失敗しても空スライスを返す", func(t *testing.T) {
		chain := NewPlaceChain(model.PlaceKindHotel, &stubPlaceStrategy{name: "a", err: errors.New("down")})
		places, err := chain.FindPlaces(ctx, query)

		require.NoError(t, err)
		assert.NotNil(t, places)
		assert.Empty(t, places)
	})

	t.Run("キャンセル済みのコンテキストではエラー", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		chain := NewPlaceChain(model.PlaceKindRestaurant, &stubPlaceStrategy{name: "a"})
		_, err := chain.FindPlaces(cancelled, query)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGeocodeChain_Resolve(t *testing.T) {
	ctx := context.Background()
	jaipur := &model.GeoLocation{Lat: 26.9124, Lng: 75.7873, Country: "India"}

	t.Run("解決結果をキャッシュに書き戻す", func(t *testing.T) {
		cache := &memoryGeocodeCache{items: map[string]*model.GeoLocation{}}
		failing := &stubGeocoder{name: "nominatim", err: errors.New("timeout")}
		ors := &stubGeocoder{name: "openrouteservice", location: jaipur}

		chain := NewGeocodeChain(cache, failing, ors)
		loc, err := chain.Resolve(ctx, "Jaipur")
		require.NoError(t, err)
		assert.Equal(t, jaipur, loc)
		assert.Equal(t, jaipur, cache.items["jaipur"])

		// 2回目はキャッシュから返る
		loc, err = chain.Resolve(ctx, " JAIPUR ")
		require.NoError(t, err)
		assert.Equal(t, jaipur, loc)
		assert.Equal(t, 1, ors.calls)
	})

	t.Run("どの戦略でも解決できない", func(t *testing.T) {
		chain := NewGeocodeChain(nil, &stubGeocoder{name: "nominatim"})
		_, err := chain.Resolve(ctx, "Atlantis")
		assert.ErrorIs(t, err, model.ErrDestinationNotResolvable)
	})

	t.Run("空の地名", func(t *testing.T) {
		chain := NewGeocodeChain(nil)
		_, err := chain.Resolve(ctx, "  ")
		assert.ErrorIs(t, err, model.ErrDestinationNotResolvable)
	})
}

func TestDescriptionChain_Describe(t *testing.T) {
	ctx := context.Background()

	t.Run("Wikipediaになければ生成AIを使う", func(t *testing.T) {
		generator := new(mockTextGenerator)
		generator.On("DescribePlace", mock.Anything, "Hawa Mahal", "Jaipur").Return("Palace of Winds.", nil)

		wiki := NewGeneratedDescriptionStrategy(&emptyGenerator{})
		chain := NewDescriptionChain(wiki, NewGeneratedDescriptionStrategy(generator))

		text, err := chain.Describe(ctx, "Hawa Mahal", "Jaipur")
		require.NoError(t, err)
		assert.Equal(t, "Palace of Winds.", text)
		generator.AssertExpectations(t)
	})

	t.Run("全戦略が失敗したら空文字", func(t *testing.T) {
		generator := new(mockTextGenerator)
		generator.On("DescribePlace", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("quota"))

		chain := NewDescriptionChain(NewGeneratedDescriptionStrategy(generator))
		text, err := chain.Describe(ctx, "Somewhere", "Nowhere")
		require.NoError(t, err)
		assert.Empty(t, text)
	})
}

type emptyGenerator struct{}

func (emptyGenerator) DescribePlace(ctx context.Context, placeName, destination string) (string, error) {
	return "   ", nil
}

func (emptyGenerator) AnswerTravelQuestion(ctx context.Context, message string) (string, error) {
	return "", nil
}

func TestCachedPlaceStrategy(t *testing.T) {
	ctx := context.Background()
	inner := &stubPlaceStrategy{name: "overpass", places: []model.PlaceCandidate{{Name: "Louvre", Rating: "N/A"}}}
	cache := &memorySourceCache{items: map[string][]byte{}}
	cached := NewCachedPlaceStrategy(model.PlaceKindAttraction, inner, cache, time.Minute)

	query := model.PlaceQuery{Center: model.LatLng{Lat: 48.85661, Lng: 2.35222}, Budget: model.BudgetMid}

	first, err := cached.FindPlaces(ctx, query)
	require.NoError(t, err)
	second, err := cached.FindPlaces(ctx, query)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
	assert.Contains(t, cache.items, "places:attraction:48.857:2.352:Mid")
	assert.Equal(t, "cached:overpass", cached.Name())

	t.Run("空の結果はキャッシュしない", func(t *testing.T) {
		empty := &stubPlaceStrategy{name: "empty"}
		c := NewCachedPlaceStrategy(model.PlaceKindHotel, empty, cache, 0)
		_, _ = c.FindPlaces(ctx, query)
		_, _ = c.FindPlaces(ctx, query)
		assert.Equal(t, 2, empty.calls)
	})
}
