package shared

import (
	"time"

	"github.com/google/uuid"
)

// OutboxStatus defines message publishing states
type OutboxStatus string

const (
	OutboxStatusPending         OutboxStatus = "PENDING"
	OutboxStatusProcessed       OutboxStatus = "PROCESSED"
	OutboxStatusFailedToPublish OutboxStatus = "FAILED_TO_PUBLISH"
)

// ActivityKind labels entries in the activity feed
type ActivityKind string

const (
	ActivityGoalCompleted ActivityKind = "goal_completed"
)

// GoalCompletedEvent is published when a savings goal crosses its target for
// the first time. It travels through the transactional outbox to Kafka and
// is materialized into the activity feed.
type GoalCompletedEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	UserID        int64     `json:"user_id"`
	GoalID        int64     `json:"goal_id"`
	GoalTitle     string    `json:"goal_title"`
	TargetAmount  int64     `json:"target_amount"`
	CurrentAmount int64     `json:"current_amount"`
	Points        int       `json:"points"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	CompletedAt   time.Time `json:"completed_at"`
}

// NewGoalCompletedEvent assigns the event a fresh id and timestamp
func NewGoalCompletedEvent(userID, goalID int64, title string, target, current int64, points int, correlationID string) *GoalCompletedEvent {
	return &GoalCompletedEvent{
		EventID:       uuid.New(),
		UserID:        userID,
		GoalID:        goalID,
		GoalTitle:     title,
		TargetAmount:  target,
		CurrentAmount: current,
		Points:        points,
		CorrelationID: correlationID,
		CompletedAt:   time.Now().UTC(),
	}
}
