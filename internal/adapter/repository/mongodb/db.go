package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/odilboooy10/nestar/internal/platform/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Connect establishes and pings a MongoDB client.
func Connect(ctx context.Context, uri string, appLogger *logger.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	appLogger.Info("Successfully connected and pinged MongoDB.")
	return client, nil
}

// ensureIndexes creates the collection's indexes at repository construction.
// Failing here is not fatal: the indexes may already exist or be managed
// out-of-band, so the error is logged and startup continues.
func ensureIndexes(collection *mongo.Collection, indexes []mongo.IndexModel, appLogger *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		appLogger.Error("Failed to create indexes", zap.String("collection", collection.Name()), zap.Error(err))
		return
	}
	appLogger.Info("Successfully ensured indexes", zap.String("collection", collection.Name()))
}
