package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"goplanner/internal/domain/helper"
	"goplanner/internal/domain/model"

	"golang.org/x/time/rate"
)

// NominatimUserAgent はNominatimの利用ポリシーで必須のUser-Agent
const NominatimUserAgent = "GoPlanner Travel App"

// NewNominatimLimiter はNominatimの利用ポリシー(1リクエスト/秒)に沿ったリミッターを作成する
// プロセス全体で1つを共有する
func NewNominatimLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Second), 1)
}

// NominatimProvider はOpenStreetMap Nominatimを使用したジオコーディングと名称検索の実装
type NominatimProvider struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewNominatimProvider は新しいプロバイダを生成する
func NewNominatimProvider(baseURL string, limiter *rate.Limiter) *NominatimProvider {
	if limiter == nil {
		limiter = NewNominatimLimiter()
	}
	return &NominatimProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    limiter,
	}
}

// NominatimPlace は検索結果の1件
type NominatimPlace struct {
	Lat         float64
	Lng         float64
	DisplayName string
	Class       string
	Type        string
}

// Name は表示名の先頭部分
func (p NominatimPlace) Name() string {
	return helper.FirstPart(p.DisplayName)
}

func (n *NominatimProvider) Name() string {
	return "nominatim"
}

// Search は自由文で検索する
func (n *NominatimProvider) Search(ctx context.Context, query string, limit int) ([]NominatimPlace, error) {
	// 1. 利用ポリシーに従い待機
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("レートリミット待機中に中断: %w", err)
	}

	// 2. HTTPリクエストを作成・実行
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.buildURL(query, limit), nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("User-Agent", NominatimUserAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	// 3. JSONレスポンスをパース
	var apiResp []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	// 4. ドメインに近い形に変換（座標が読めない結果は除外）
	places := make([]NominatimPlace, 0, len(apiResp))
	for _, r := range apiResp {
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lng, errLng := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLng != nil {
			continue
		}
		places = append(places, NominatimPlace{
			Lat:         lat,
			Lng:         lng,
			DisplayName: r.DisplayName,
			Class:       r.Class,
			Type:        r.Type,
		})
	}
	return places, nil
}

// Geocode は地名を座標に解決する。見つからない場合は (nil, nil)
func (n *NominatimProvider) Geocode(ctx context.Context, query string) (*model.GeoLocation, error) {
	places, err := n.Search(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, nil
	}
	first := places[0]
	return &model.GeoLocation{
		Lat:         first.Lat,
		Lng:         first.Lng,
		Country:     helper.LastPart(first.DisplayName),
		DisplayName: first.DisplayName,
	}, nil
}

func (n *NominatimProvider) buildURL(query string, limit int) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	return fmt.Sprintf("%s/search?%s", n.baseURL, params.Encode())
}

// --- Nominatim APIのレスポンスをパースするための構造体 ---

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Class       string `json:"class"`
	Type        string `json:"type"`
}
