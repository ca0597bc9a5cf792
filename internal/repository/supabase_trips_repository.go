package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"goplanner/internal/domain/model"
	"goplanner/internal/domain/repository"
	"goplanner/internal/infrastructure/database"
)

const tripsTable = "trips"

type SupabaseTripsRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseTripsRepository(client *database.SupabaseClient) repository.TripRepository {
	return &SupabaseTripsRepository{
		client: client,
	}
}

func (r *SupabaseTripsRepository) Create(ctx context.Context, caller model.Caller, trip *model.Trip) (*model.Trip, error) {
	// Trip を DB 保存用の形式に変換（地理情報を含む）
	row := TripToTripDB(trip)

	data, _, err := r.client.WithToken(caller.Token).From(tripsTable).
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("旅行データの作成失敗: %w", err)
	}

	var rows []TripDB
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("旅行データのJSONアンマーシャル失敗: %w", err)
	}
	if len(rows) == 0 {
		return trip, nil
	}
	created := rows[0].ToTrip()
	return &created, nil
}

func (r *SupabaseTripsRepository) ListByUser(ctx context.Context, caller model.Caller) ([]model.Trip, error) {
	data, _, err := r.client.WithToken(caller.Token).From(tripsTable).
		Select("*", "exact", false).
		Eq("user_id", caller.UserID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("旅行一覧の取得失敗: %w", err)
	}

	var rows []TripDB
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("旅行データのJSONアンマーシャル失敗: %w", err)
	}

	trips := make([]model.Trip, 0, len(rows))
	for i := range rows {
		trips = append(trips, rows[i].ToTrip())
	}
	// 新しい順
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].CreatedAt.After(trips[j].CreatedAt)
	})
	return trips, nil
}

func (r *SupabaseTripsRepository) FindByID(ctx context.Context, caller model.Caller, id string) (*model.Trip, error) {
	data, _, err := r.client.WithToken(caller.Token).From(tripsTable).
		Select("*", "exact", false).
		Eq("id", id).
		Eq("user_id", caller.UserID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("旅行データの取得失敗: %w", err)
	}

	var rows []TripDB
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("旅行データのJSONアンマーシャル失敗: %w", err)
	}
	if len(rows) == 0 {
		return nil, model.ErrTripNotFound
	}
	trip := rows[0].ToTrip()
	return &trip, nil
}

func (r *SupabaseTripsRepository) Delete(ctx context.Context, caller model.Caller, id string) error {
	data, _, err := r.client.WithToken(caller.Token).From(tripsTable).
		Delete("representation", "").
		Eq("id", id).
		Eq("user_id", caller.UserID).
		Execute()
	if err != nil {
		return fmt.Errorf("旅行データの削除失敗: %w", err)
	}

	var rows []TripDB
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("旅行データのJSONアンマーシャル失敗: %w", err)
	}
	if len(rows) == 0 {
		return model.ErrTripNotFound
	}
	return nil
}
