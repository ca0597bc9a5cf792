package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"goplanner/internal/domain/model"
	"goplanner/internal/domain/repository"
	"goplanner/internal/infrastructure/database"
)

const createGeocodeCacheTable = `
CREATE TABLE IF NOT EXISTS geocode_cache (
	query        TEXT PRIMARY KEY,
	lat          DOUBLE PRECISION NOT NULL,
	lng          DOUBLE PRECISION NOT NULL,
	country      TEXT NOT NULL DEFAULT '',
	display_name TEXT NOT NULL DEFAULT '',
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type PostgresGeocodeCacheRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresGeocodeCacheRepository(client *database.PostgreSQLClient) *PostgresGeocodeCacheRepository {
	return &PostgresGeocodeCacheRepository{client: client}
}

var _ repository.GeocodeCacheRepository = (*PostgresGeocodeCacheRepository)(nil)

// EnsureSchema はキャッシュテーブルがなければ作成する
func (r *PostgresGeocodeCacheRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.client.DB.ExecContext(ctx, createGeocodeCacheTable); err != nil {
		return fmt.Errorf("geocode_cacheテーブルの作成に失敗: %w", err)
	}
	return nil
}

func (r *PostgresGeocodeCacheRepository) Get(ctx context.Context, query string) (*model.GeoLocation, error) {
	row := r.client.DB.QueryRowContext(ctx,
		`SELECT lat, lng, country, display_name FROM geocode_cache WHERE query = $1`, query)

	var loc model.GeoLocation
	if err := row.Scan(&loc.Lat, &loc.Lng, &loc.Country, &loc.DisplayName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ジオコードキャッシュの取得失敗: %w", err)
	}
	return &loc, nil
}

func (r *PostgresGeocodeCacheRepository) Put(ctx context.Context, query string, location *model.GeoLocation) error {
	_, err := r.client.DB.ExecContext(ctx, `
		INSERT INTO geocode_cache (query, lat, lng, country, display_name, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (query) DO UPDATE
		SET lat = EXCLUDED.lat, lng = EXCLUDED.lng, country = EXCLUDED.country,
		    display_name = EXCLUDED.display_name, updated_at = now()`,
		query, location.Lat, location.Lng, location.Country, location.DisplayName)
	if err != nil {
		return fmt.Errorf("ジオコードキャッシュの保存失敗: %w", err)
	}
	return nil
}
