package activity

import (
	"context"
	"time"

	"github.com/fintrack-ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Entry is one item in a user's activity feed, materialized asynchronously
// from domain events.
type Entry struct {
	EventID    uuid.UUID           `json:"event_id" bson:"event_id"`
	UserID     int64               `json:"user_id" bson:"user_id"`
	Kind       shared.ActivityKind `json:"kind" bson:"kind"`
	Title      string              `json:"title" bson:"title"`
	Detail     string              `json:"detail,omitempty" bson:"detail,omitempty"`
	Points     int                 `json:"points,omitempty" bson:"points,omitempty"`
	OccurredAt time.Time           `json:"occurred_at" bson:"occurred_at"`
}

// Repository defines activity feed persistence operations
type Repository interface {
	// Insert stores an entry; inserting the same event id twice is a no-op
	// so event redelivery stays idempotent.
	Insert(ctx context.Context, entry *Entry) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]*Entry, error)
}

// ErrDuplicateEntry indicates an entry for the event already exists
type ErrDuplicateEntry struct {
	EventID uuid.UUID
}

func (e ErrDuplicateEntry) Error() string {
	return "activity entry already recorded for event: " + e.EventID.String()
}
