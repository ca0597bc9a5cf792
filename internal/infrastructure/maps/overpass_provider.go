package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"goplanner/internal/domain/model"
)

// OverpassProvider はOpenStreetMap Overpass APIを使用したスポット検索の実装
type OverpassProvider struct {
	endpoint   string
	httpClient *http.Client
}

// NewOverpassProvider は新しいプロバイダを生成する
func NewOverpassProvider(endpoint string) *OverpassProvider {
	return &OverpassProvider{
		endpoint: endpoint,
		// Overpass側のタイムアウト(25秒)より短く、呼び出し元のcontextで打ち切る
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// OverpassElement はnode/way/relationのいずれか
type OverpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Coordinates はway/relationの場合は中心点、座標がなければfallbackを返す
func (e OverpassElement) Coordinates(fallback model.LatLng) model.LatLng {
	if e.Center != nil {
		return model.LatLng{Lat: e.Center.Lat, Lng: e.Center.Lon}
	}
	if e.Lat != 0 || e.Lon != 0 {
		return model.LatLng{Lat: e.Lat, Lng: e.Lon}
	}
	return fallback
}

// Tag はタグを返す。存在しなければ空文字
func (e OverpassElement) Tag(key string) string {
	if e.Tags == nil {
		return ""
	}
	return strings.TrimSpace(e.Tags[key])
}

// Query はOverpass QLを実行する
func (o *OverpassProvider) Query(ctx context.Context, ql string) ([]OverpassElement, error) {
	form := url.Values{}
	form.Set("data", ql)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", NominatimUserAgent)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Overpass APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Overpass APIからエラーステータスが返されました: %s", resp.Status)
	}

	var apiResp overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}
	return apiResp.Elements, nil
}

// AroundQuery は中心から半径radius(m)内で、いずれかのタグ条件に合う要素を取得するクエリを組み立てる
// 各条件は node/way/relation すべてに適用する
func AroundQuery(center model.LatLng, radius int, filters ...string) string {
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];\n(\n")
	around := fmt.Sprintf("(around:%d,%f,%f)", radius, center.Lat, center.Lng)
	for _, f := range filters {
		for _, kind := range []string{"node", "way", "relation"} {
			fmt.Fprintf(&b, "  %s%s%s;\n", kind, f, around)
		}
	}
	b.WriteString(");\nout center meta;")
	return b.String()
}

type overpassResponse struct {
	Elements []OverpassElement `json:"elements"`
}
