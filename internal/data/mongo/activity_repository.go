// Package mongo implements the activity feed store on MongoDB.
package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fintrack-ledger/internal/domain/activity"
	"github.com/fintrack-ledger/internal/platform/persistence"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const activityCollection = "activity_entries"

// ActivityRepository implements the activity.Repository interface on MongoDB
type ActivityRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewActivityRepository builds the repository and ensures the unique index
// on event_id that backs idempotent inserts.
func NewActivityRepository(ctx context.Context, logger *slog.Logger, db *persistence.MongoDB) (activity.Repository, error) {
	collection := db.Collection(activityCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "occurred_at", Value: -1}},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, fmt.Errorf("failed to create activity indexes: %w", err)
	}

	return &ActivityRepository{
		collection: collection,
		logger:     logger,
	}, nil
}

// Insert stores the entry. A duplicate event id returns ErrDuplicateEntry so
// redelivered events are recorded once.
func (r *ActivityRepository) Insert(ctx context.Context, entry *activity.Entry) error {
	_, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return activity.ErrDuplicateEntry{EventID: entry.EventID}
		}
		r.logger.Error("Failed to insert activity entry", "event_id", entry.EventID, "error", err)
		return fmt.Errorf("failed to insert activity entry: %w", err)
	}

	return nil
}

func (r *ActivityRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*activity.Entry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		r.logger.Error("Failed to list activity entries", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list activity entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*activity.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode activity entries: %w", err)
	}

	return entries, nil
}
