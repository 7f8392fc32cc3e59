package outbox

import (
	"encoding/json"
	"time"

	"github.com/fintrack-ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Message stores a domain event for reliable publishing. It is inserted in
// the same database transaction as the state change it describes.
type Message struct {
	ID            int64               `json:"id"`
	EventID       uuid.UUID           `json:"event_id"`
	UserID        int64               `json:"user_id"`
	Payload       json.RawMessage     `json:"payload"`
	Status        shared.OutboxStatus `json:"status"`
	Attempts      int                 `json:"attempts"`
	CreatedAt     time.Time           `json:"created_at"`
	LastAttemptAt *time.Time          `json:"last_attempt_at,omitempty"`
}

// NewGoalCompletedMessage wraps a goal-completed event for the outbox
func NewGoalCompletedMessage(event *shared.GoalCompletedEvent) (*Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return &Message{
		EventID:   event.EventID,
		UserID:    event.UserID,
		Payload:   payload,
		Status:    shared.OutboxStatusPending,
		Attempts:  0,
		CreatedAt: time.Now(),
	}, nil
}

// GoalCompletedEvent extracts the event from the payload
func (m *Message) GoalCompletedEvent() (*shared.GoalCompletedEvent, error) {
	var event shared.GoalCompletedEvent
	if err := json.Unmarshal(m.Payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
