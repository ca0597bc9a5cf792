package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"goplanner/internal/domain/model"
	"goplanner/internal/domain/repository"
)

// APITripsRepository は外部のGoPlannerバックエンドに旅行の保存を委譲する
// 呼び出し元のBearerトークンをそのまま転送する
type APITripsRepository struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPITripsRepository(baseURL string) repository.TripRepository {
	return &APITripsRepository{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// backendEnvelope はバックエンドの {status, data, message} 形式
type backendEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (r *APITripsRepository) Create(ctx context.Context, caller model.Caller, trip *model.Trip) (*model.Trip, error) {
	body, err := json.Marshal(trip)
	if err != nil {
		return nil, fmt.Errorf("旅行データのJSONマーシャル失敗: %w", err)
	}

	env, err := r.do(ctx, caller, http.MethodPost, "/trips", body)
	if err != nil {
		return nil, err
	}
	created, err := decodeTrip(env.Data)
	if err != nil || created == nil {
		return trip, nil
	}
	return created, nil
}

func (r *APITripsRepository) ListByUser(ctx context.Context, caller model.Caller) ([]model.Trip, error) {
	env, err := r.do(ctx, caller, http.MethodGet, "/trips", nil)
	if err != nil {
		return nil, err
	}

	var list model.TripListResponse
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &list); err != nil {
			return nil, fmt.Errorf("旅行一覧のJSONアンマーシャル失敗: %w", err)
		}
	}
	if list.Trips == nil {
		list.Trips = []model.Trip{}
	}
	return list.Trips, nil
}

func (r *APITripsRepository) FindByID(ctx context.Context, caller model.Caller, id string) (*model.Trip, error) {
	env, err := r.do(ctx, caller, http.MethodGet, "/trips/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	trip, err := decodeTrip(env.Data)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, model.ErrTripNotFound
	}
	return trip, nil
}

func (r *APITripsRepository) Delete(ctx context.Context, caller model.Caller, id string) error {
	_, err := r.do(ctx, caller, http.MethodDelete, "/trips/"+url.PathEscape(id), nil)
	return err
}

func (r *APITripsRepository) do(ctx context.Context, caller model.Caller, method, path string, body []byte) (*backendEnvelope, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if caller.Token != "" {
		req.Header.Set("Authorization", "Bearer "+caller.Token)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("バックエンドAPIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, model.ErrUnauthorized
	case http.StatusNotFound:
		return nil, model.ErrTripNotFound
	}

	var env backendEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("バックエンドのレスポンスのパースに失敗 (status: %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= 300 || env.Status != "success" {
		return nil, fmt.Errorf("バックエンドAPIエラー (status: %d): %s", resp.StatusCode, env.Message)
	}
	return &env, nil
}

// decodeTrip は data.trip または data そのものを Trip として読む
func decodeTrip(data json.RawMessage) (*model.Trip, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var wrapped struct {
		Trip *model.Trip `json:"trip"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("旅行データのJSONアンマーシャル失敗: %w", err)
	}
	if wrapped.Trip != nil {
		return wrapped.Trip, nil
	}
	var trip model.Trip
	if err := json.Unmarshal(data, &trip); err != nil {
		return nil, fmt.Errorf("旅行データのJSONアンマーシャル失敗: %w", err)
	}
	if trip.ID == "" {
		return nil, nil
	}
	return &trip, nil
}
