package maps

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"goplanner/internal/domain/model"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// オートコンプリートの検索範囲
const (
	orsAutocompleteLayers  = "locality,venue,address"
	orsAutocompleteSources = "geonames,openstreetmap,whosonfirst"
	orsAutocompleteCountry = "IN,US,GB,FR,IT,ES,DE,JP,TH,AU,SG,AE,GR,TR,EG,MA,PT,CZ,AT,NO,IS,IE"

	// MinAutocompleteChars 未満の入力では検索しない
	MinAutocompleteChars = 2
	// DefaultAutocompleteSize はオートコンプリートの既定件数
	DefaultAutocompleteSize = 5
)

// DefaultOpenRouteServiceURL はOpenRouteServiceのAPIエンドポイント
const DefaultOpenRouteServiceURL = "https://api.openrouteservice.org"

// OpenRouteServiceProvider はOpenRouteServiceのジオコーディングAPIの実装
// APIキーがない場合はすべての操作が空の結果を返す
type OpenRouteServiceProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenRouteServiceProvider は新しいプロバイダを生成する
func NewOpenRouteServiceProvider(apiKey, baseURL string) *OpenRouteServiceProvider {
	return &OpenRouteServiceProvider{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled はAPIキーが設定されているかどうか
func (o *OpenRouteServiceProvider) Enabled() bool {
	return o.apiKey != ""
}

func (o *OpenRouteServiceProvider) Name() string {
	return "openrouteservice"
}

// Geocode は地名を座標に解決する。見つからない場合は (nil, nil)
func (o *OpenRouteServiceProvider) Geocode(ctx context.Context, query string) (*model.GeoLocation, error) {
	if !o.Enabled() {
		return nil, nil
	}
	params := url.Values{}
	params.Set("text", query)
	params.Set("size", "1")

	fc, err := o.get(ctx, "/geocode/search", params)
	if err != nil {
		return nil, err
	}
	if len(fc.Features) == 0 {
		return nil, nil
	}
	f := fc.Features[0]
	p, ok := f.Geometry.(orb.Point)
	if !ok {
		return nil, nil
	}
	return &model.GeoLocation{
		Lat:         p.Lat(),
		Lng:         p.Lon(),
		Country:     f.Properties.MustString("country", ""),
		DisplayName: f.Properties.MustString("label", query),
	}, nil
}

// Autocomplete は入力途中の地名から候補を返す
func (o *OpenRouteServiceProvider) Autocomplete(ctx context.Context, text string, size int) ([]model.PlaceSuggestion, error) {
	text = strings.TrimSpace(text)
	if !o.Enabled() || len([]rune(text)) < MinAutocompleteChars {
		return []model.PlaceSuggestion{}, nil
	}
	if size <= 0 {
		size = DefaultAutocompleteSize
	}

	params := url.Values{}
	params.Set("text", text)
	params.Set("size", strconv.Itoa(size))
	params.Set("layers", orsAutocompleteLayers)
	params.Set("boundary.country", orsAutocompleteCountry)
	params.Set("sources", orsAutocompleteSources)

	fc, err := o.get(ctx, "/geocode/autocomplete", params)
	if err != nil {
		return nil, err
	}

	suggestions := make([]model.PlaceSuggestion, 0, len(fc.Features))
	for _, f := range fc.Features {
		p, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}
		props := f.Properties
		name := props.MustString("name", "")
		locality := props.MustString("locality", "")
		region := props.MustString("region", props.MustString("county", ""))
		country := props.MustString("country", "")

		suggestions = append(suggestions, model.PlaceSuggestion{
			ID:          featureID(f),
			Name:        name,
			FullName:    fullName(name, locality, region, country),
			Coordinates: model.LatLngFromPoint(p),
			Country:     country,
			Locality:    locality,
			Region:      region,
			Type:        props.MustString("layer", "place"),
		})
	}
	return suggestions, nil
}

// Reverse は座標から地名を返す。見つからない場合は (nil, nil)
func (o *OpenRouteServiceProvider) Reverse(ctx context.Context, at model.LatLng) (*model.ReversePlace, error) {
	if !o.Enabled() {
		return nil, nil
	}
	params := url.Values{}
	params.Set("point.lat", strconv.FormatFloat(at.Lat, 'f', -1, 64))
	params.Set("point.lon", strconv.FormatFloat(at.Lng, 'f', -1, 64))
	params.Set("size", "1")

	fc, err := o.get(ctx, "/geocode/reverse", params)
	if err != nil {
		return nil, err
	}
	if len(fc.Features) == 0 {
		return nil, nil
	}
	f := fc.Features[0]
	place := &model.ReversePlace{
		Name:        f.Properties.MustString("name", ""),
		Country:     f.Properties.MustString("country", ""),
		Locality:    f.Properties.MustString("locality", ""),
		Coordinates: at,
	}
	if p, ok := f.Geometry.(orb.Point); ok {
		place.Coordinates = model.LatLngFromPoint(p)
	}
	return place, nil
}

func (o *OpenRouteServiceProvider) get(ctx context.Context, path string, params url.Values) (*geojson.FeatureCollection, error) {
	params.Set("api_key", o.apiKey)
	apiURL := fmt.Sprintf("%s%s?%s", o.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OpenRouteService APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenRouteService APIからエラーステータスが返されました: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスの読み込みに失敗: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, fmt.Errorf("GeoJSONのパースに失敗: %w", err)
	}
	return fc, nil
}

// fullName は重複を除いて「名称, 地域, 州, 国」の形に連結する
func fullName(name, locality, region, country string) string {
	parts := []string{name}
	if locality != "" && locality != name {
		parts = append(parts, locality)
	}
	if region != "" && region != locality && region != name {
		parts = append(parts, region)
	}
	if country != "" {
		parts = append(parts, country)
	}
	return strings.Join(parts, ", ")
}

func featureID(f *geojson.Feature) string {
	if f.ID != nil {
		return fmt.Sprint(f.ID)
	}
	return f.Properties.MustString("id", f.Properties.MustString("gid", ""))
}
