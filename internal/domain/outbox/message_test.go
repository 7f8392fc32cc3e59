package outbox

import (
	"testing"
	"time"

	"github.com/fintrack-ledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGoalCompletedMessage(t *testing.T) {
	t.Run("SuccessfulCreation", func(t *testing.T) {
		event := shared.NewGoalCompletedEvent(7, 11, "Emergency fund", 100000, 105000, 50, "corr-1")

		beforeCreation := time.Now()
		msg, err := NewGoalCompletedMessage(event)
		afterCreation := time.Now()

		require.NoError(t, err)
		require.NotNil(t, msg)

		assert.Equal(t, event.EventID, msg.EventID)
		assert.Equal(t, event.UserID, msg.UserID)
		assert.Equal(t, shared.OutboxStatusPending, msg.Status)
		assert.Equal(t, 0, msg.Attempts)
		assert.Nil(t, msg.LastAttemptAt)
		assert.WithinDuration(t, beforeCreation, msg.CreatedAt, afterCreation.Sub(beforeCreation)+time.Millisecond)
	})
}

func TestMessage_GoalCompletedEvent(t *testing.T) {
	t.Run("RoundTripsPayload", func(t *testing.T) {
		original := shared.NewGoalCompletedEvent(7, 11, "Emergency fund", 100000, 105000, 50, "corr-1")
		msg, err := NewGoalCompletedMessage(original)
		require.NoError(t, err)

		decoded, err := msg.GoalCompletedEvent()
		require.NoError(t, err)
		require.NotNil(t, decoded)

		assert.Equal(t, original.EventID, decoded.EventID)
		assert.Equal(t, original.UserID, decoded.UserID)
		assert.Equal(t, original.GoalID, decoded.GoalID)
		assert.Equal(t, original.GoalTitle, decoded.GoalTitle)
		assert.Equal(t, original.TargetAmount, decoded.TargetAmount)
		assert.Equal(t, original.CurrentAmount, decoded.CurrentAmount)
		assert.Equal(t, original.Points, decoded.Points)
		assert.Equal(t, original.CorrelationID, decoded.CorrelationID)
		assert.True(t, original.CompletedAt.Equal(decoded.CompletedAt))
	})

	t.Run("MalformedPayload", func(t *testing.T) {
		msg := &Message{EventID: uuid.New(), Payload: []byte(`{"user_id":`)}
		_, err := msg.GoalCompletedEvent()
		assert.Error(t, err)
	})
}
