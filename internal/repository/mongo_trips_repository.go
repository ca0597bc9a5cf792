package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"goplanner/internal/domain/model"
	"goplanner/internal/domain/repository"
	"goplanner/internal/infrastructure/database"
)

type MongoTripsRepository struct {
	collection *mongo.Collection
}

func NewMongoTripsRepository(client *database.MongoClient) repository.TripRepository {
	return &MongoTripsRepository{collection: client.Collection(tripsTable)}
}

func (r *MongoTripsRepository) Create(ctx context.Context, _ model.Caller, trip *model.Trip) (*model.Trip, error) {
	if _, err := r.collection.InsertOne(ctx, trip); err != nil {
		return nil, fmt.Errorf("旅行データの作成失敗: %w", err)
	}
	return trip, nil
}

func (r *MongoTripsRepository) ListByUser(ctx context.Context, caller model.Caller) ([]model.Trip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": caller.UserID}, opts)
	if err != nil {
		return nil, fmt.Errorf("旅行一覧の取得失敗: %w", err)
	}
	defer cursor.Close(ctx)

	trips := []model.Trip{}
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("旅行データのデコード失敗: %w", err)
	}
	return trips, nil
}

func (r *MongoTripsRepository) FindByID(ctx context.Context, caller model.Caller, id string) (*model.Trip, error) {
	var trip model.Trip
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": caller.UserID}).Decode(&trip)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("旅行データの取得失敗: %w", err)
	}
	return &trip, nil
}

func (r *MongoTripsRepository) Delete(ctx context.Context, caller model.Caller, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": caller.UserID})
	if err != nil {
		return fmt.Errorf("旅行データの削除失敗: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrTripNotFound
	}
	return nil
}
