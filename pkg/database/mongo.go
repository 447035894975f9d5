package database

import (
	"context"
	"fmt"
	"time"

	"pattern-share/pkg/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoDatabase returns a handle to the configured database. Connecting is
// lazy, so the server may still be unreachable when this returns.
func NewMongoDatabase(cfg *config.Config) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}
	return client.Database(cfg.MongoDatabase), nil
}

func CloseMongo(ctx context.Context, db *mongo.Database) error {
	return db.Client().Disconnect(ctx)
}
