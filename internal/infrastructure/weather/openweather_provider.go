package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"goplanner/internal/domain/model"
)

// DefaultBaseURL はOpenWeatherMapのAPIエンドポイント
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherProvider はOpenWeatherMap APIを使用した天気情報の実装
type OpenWeatherProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherProvider は新しいプロバイダを生成する
func NewOpenWeatherProvider(apiKey, baseURL string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// CurrentWeather は都市の現在の天気を取得する（摂氏）
// APIが cod != 200 を返した場合は (nil, nil)
func (p *OpenWeatherProvider) CurrentWeather(ctx context.Context, city string) (*model.Weather, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", p.apiKey)
	params.Set("units", "metric")
	apiURL := fmt.Sprintf("%s/weather?%s", p.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	// 404などでも本文にcodが入るので、ステータスではなくcodで判定する
	var apiResp openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}
	if apiResp.code() != http.StatusOK || len(apiResp.Weather) == 0 {
		return nil, nil
	}

	return &model.Weather{
		Temperature: int(math.Round(apiResp.Main.Temp)),
		Condition:   apiResp.Weather[0].Main,
		Description: apiResp.Weather[0].Description,
		Humidity:    apiResp.Main.Humidity,
		WindSpeed:   apiResp.Wind.Speed,
	}, nil
}

// --- OpenWeatherMap APIのレスポンスをパースするための構造体 ---

type openWeatherResponse struct {
	// 成功時は数値、エラー時は文字列で返ってくる
	Cod  json.RawMessage `json:"cod"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

func (r openWeatherResponse) code() int {
	var n int
	if err := json.Unmarshal(r.Cod, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(r.Cod, &s); err == nil {
		n, _ = strconv.Atoi(s)
	}
	return n
}
