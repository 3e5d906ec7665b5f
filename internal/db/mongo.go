package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ismail-dev-code/meal-giver-server/internal/logger"
)

// Connect opens the MongoDB connection and verifies it with a ping.
func Connect(uri, dbName string) *mongo.Database {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Fatalf("MongoDB connection failed: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatalf("MongoDB ping failed: %v", err)
	}

	logger.Info().Str("db", dbName).Msg("connected to MongoDB")
	return client.Database(dbName)
}
