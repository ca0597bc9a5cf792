package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"goplanner/internal/domain/helper"
)

// WikipediaProvider はWikipedia REST APIの要約を説明文として使う
type WikipediaProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewWikipediaProvider は新しいプロバイダを生成する
func NewWikipediaProvider(baseURL string) *WikipediaProvider {
	return &WikipediaProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *WikipediaProvider) Name() string {
	return "wikipedia"
}

// Describe はページ要約の extract を返す。記事がなければ ("", nil)
func (w *WikipediaProvider) Describe(ctx context.Context, placeName, _ string) (string, error) {
	title := helper.FirstPart(placeName)
	if title == "" {
		return "", nil
	}
	apiURL := fmt.Sprintf("%s/page/summary/%s", w.baseURL, url.PathEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return "", fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	resp, err := w.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("Wikipedia APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Wikipedia APIからエラーステータスが返されました: %s", resp.Status)
	}

	var summary struct {
		Extract string `json:"extract"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return "", fmt.Errorf("JSONのパースに失敗: %w", err)
	}
	return strings.TrimSpace(summary.Extract), nil
}
