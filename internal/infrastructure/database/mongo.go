package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient MongoDBクライアントのラッパー
type MongoClient struct {
	client   *mongo.Client
	database string
}

// NewMongoClient 新しいMongoDBクライアントを作成
func NewMongoClient(ctx context.Context, uri, database string) (*MongoClient, error) {
	if uri == "" {
		return nil, fmt.Errorf("MONGO_URI環境変数が設定されていません")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("MongoDBへの接続に失敗: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("MongoDBへのPingに失敗: %w", err)
	}

	log.Printf("✅ MongoDB client initialized (database: %s)", database)
	return &MongoClient{client: client, database: database}, nil
}

// Collection は設定済みデータベースのコレクションを返す
func (mc *MongoClient) Collection(name string) *mongo.Collection {
	return mc.client.Database(mc.database).Collection(name)
}

// Close 接続を閉じる
func (mc *MongoClient) Close(ctx context.Context) error {
	return mc.client.Disconnect(ctx)
}

// HealthCheck データベース接続のヘルスチェック
func (mc *MongoClient) HealthCheck(ctx context.Context) error {
	return mc.client.Ping(ctx, readpref.Primary())
}
