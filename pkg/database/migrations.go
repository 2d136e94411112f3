package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the application depends on. The
// unique (user, car) review index is the storage-level backstop for the
// one-review-per-user-per-car rule.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		"cars": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "brand", Value: 1}, {Key: "model", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "pricing.daily_rate", Value: 1}}},
		},
		"bookings": {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "car", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "transaction_id", Value: 1}}, Options: options.Index().SetSparse(true)},
		},
		"reviews": {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "car", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "car", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"subscribers": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", collection, err)
		}
	}

	return nil
}
