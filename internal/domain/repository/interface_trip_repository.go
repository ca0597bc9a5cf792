package repository

import (
	"context"

	"goplanner/internal/domain/model"
)

// TripRepository は保存済み旅行の永続化を担当する
type TripRepository interface {
	Create(ctx context.Context, caller model.Caller, trip *model.Trip) (*model.Trip, error)
	ListByUser(ctx context.Context, caller model.Caller) ([]model.Trip, error)
	FindByID(ctx context.Context, caller model.Caller, id string) (*model.Trip, error)
	Delete(ctx context.Context, caller model.Caller, id string) error
}
