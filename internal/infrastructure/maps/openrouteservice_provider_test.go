package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"goplanner/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orsAutocompleteBody = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [72.8777, 19.076]},
      "properties": {"id": "whosonfirst:locality:101752487", "name": "Mumbai", "locality": "Mumbai", "region": "Maharashtra", "country": "India", "layer": "locality"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [73.0, 19.2]},
      "properties": {"id": "openstreetmap:venue:1", "name": "Gateway of India", "locality": "Mumbai", "county": "Mumbai Suburban", "country": "India"}
    }
  ]
}`

func TestOpenRouteServiceProvider_Autocomplete(t *testing.T) {
	t.Run("候補を整形して返す", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "/geocode/autocomplete", r.URL.Path)
			assert.Equal(t, "test-key", q.Get("api_key"))
			assert.Equal(t, "Mum", q.Get("text"))
			assert.Equal(t, orsAutocompleteLayers, q.Get("layers"))
			assert.Equal(t, orsAutocompleteCountry, q.Get("boundary.country"))
			assert.Equal(t, orsAutocompleteSources, q.Get("sources"))
			_, _ = w.Write([]byte(orsAutocompleteBody))
		}))
		defer srv.Close()

		p := NewOpenRouteServiceProvider("test-key", srv.URL)
		got, err := p.Autocomplete(context.Background(), "Mum", 5)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "Mumbai, Maharashtra, India", got[0].FullName, "名称と同じ地域名は重複させない")
		assert.Equal(t, "locality", got[0].Type)
		assert.Equal(t, model.LatLng{Lat: 19.076, Lng: 72.8777}, got[0].Coordinates)

		assert.Equal(t, "Gateway of India, Mumbai, Mumbai Suburban, India", got[1].FullName)
		assert.Equal(t, "Mumbai Suburban", got[1].Region, "regionがなければcountyを使う")
		assert.Equal(t, "place", got[1].Type)
		assert.Equal(t, "openstreetmap:venue:1", got[1].ID)
	})

	t.Run("APIキーがなければ空", func(t *testing.T) {
		p := NewOpenRouteServiceProvider("", "http://127.0.0.1:1")
		got, err := p.Autocomplete(context.Background(), "Mumbai", 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("2文字未満は検索しない", func(t *testing.T) {
		p := NewOpenRouteServiceProvider("test-key", "http://127.0.0.1:1")
		got, err := p.Autocomplete(context.Background(), "M", 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestOpenRouteServiceProvider_Reverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/reverse", r.URL.Path)
		assert.Equal(t, "19.076", r.URL.Query().Get("point.lat"))
		assert.Equal(t, "72.8777", r.URL.Query().Get("point.lon"))
		_, _ = w.Write([]byte(orsAutocompleteBody))
	}))
	defer srv.Close()

	p := NewOpenRouteServiceProvider("test-key", srv.URL)
	got, err := p.Reverse(context.Background(), model.LatLng{Lat: 19.076, Lng: 72.8777})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Mumbai", got.Name)
	assert.Equal(t, "India", got.Country)
}

func TestOpenRouteServiceProvider_Geocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/search", r.URL.Path)
		_, _ = w.Write([]byte(orsAutocompleteBody))
	}))
	defer srv.Close()

	loc, err := NewOpenRouteServiceProvider("test-key", srv.URL).Geocode(context.Background(), "Mumbai")
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.InDelta(t, 19.076, loc.Lat, 1e-9)
	assert.Equal(t, "India", loc.Country)
}
