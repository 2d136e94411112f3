package mongodb

import (
	"context"
	"fmt"
	"time"

	"steeraway/internal/models"
	"steeraway/internal/repositories/interfaces"
	"steeraway/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type subscriberRepository struct {
	collection *mongo.Collection
}

func NewSubscriberRepository(db *mongo.Database) interfaces.SubscriberRepository {
	return &subscriberRepository{
		collection: db.Collection("subscribers"),
	}
}

// Upsert subscribes an email, resubscribing it if it opted out earlier.
func (r *subscriberRepository) Upsert(ctx context.Context, email string) (*models.Subscriber, error) {
	now := time.Now()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var subscriber models.Subscriber
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"email": email},
		bson.M{
			"$set": bson.M{
				"is_subscribed": true,
				"subscribed_at": now,
				"updated_at":    now,
			},
			"$setOnInsert": bson.M{
				"email":      email,
				"created_at": now,
			},
		},
		opts,
	).Decode(&subscriber)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe email: %w", err)
	}

	return &subscriber, nil
}

func (r *subscriberRepository) Unsubscribe(ctx context.Context, email string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"is_subscribed": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to unsubscribe email: %w", err)
	}
	if result.MatchedCount == 0 {
		return utils.NotFoundError("subscriber")
	}

	return nil
}

func (r *subscriberRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Subscriber, int64, error) {
	filter := bson.M{"is_subscribed": true}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count subscribers: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer cursor.Close(ctx)

	var subscribers []*models.Subscriber
	if err := cursor.All(ctx, &subscribers); err != nil {
		return nil, 0, fmt.Errorf("failed to decode subscribers: %w", err)
	}

	return subscribers, total, nil
}

func (r *subscriberRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"is_subscribed": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}
