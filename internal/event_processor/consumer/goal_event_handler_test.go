package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/fintrack-ledger/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProcessingService struct {
	mock.Mock
}

func (m *MockProcessingService) RecordGoalCompletion(ctx context.Context, event *shared.GoalCompletedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockDLQProducer struct {
	mock.Mock
}

func (m *MockDLQProducer) PublishToDLQ(ctx context.Context, key string, originalMessageValue []byte, reason string) error {
	args := m.Called(ctx, key, originalMessageValue, reason)
	return args.Error(0)
}

func (m *MockDLQProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestGoalEventHandler_HandleMessage(t *testing.T) {
	ctx := context.Background()

	validEvent := shared.NewGoalCompletedEvent(7, 11, "Emergency fund", 100000, 105000, 50, "corr-1")
	validValue, err := json.Marshal(validEvent)
	require.NoError(t, err)
	key := []byte(validEvent.EventID.String())

	t.Run("ProcessesValidEvent", func(t *testing.T) {
		processing := new(MockProcessingService)
		dlq := new(MockDLQProducer)
		handler := NewGoalEventHandler(newTestLogger(), processing, dlq)

		processing.On("RecordGoalCompletion", ctx, mock.MatchedBy(func(e *shared.GoalCompletedEvent) bool {
			return e.EventID == validEvent.EventID && e.GoalID == validEvent.GoalID
		})).Return(nil)

		err := handler.HandleMessage(ctx, key, validValue)

		assert.NoError(t, err)
		processing.AssertExpectations(t)
		dlq.AssertNotCalled(t, "PublishToDLQ", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ProcessingFailureLeavesOffsetUncommitted", func(t *testing.T) {
		processing := new(MockProcessingService)
		dlq := new(MockDLQProducer)
		handler := NewGoalEventHandler(newTestLogger(), processing, dlq)

		processingErr := errors.New("mongo unavailable")
		processing.On("RecordGoalCompletion", ctx, mock.AnythingOfType("*shared.GoalCompletedEvent")).Return(processingErr)

		err := handler.HandleMessage(ctx, key, validValue)

		assert.ErrorIs(t, err, processingErr)
		dlq.AssertNotCalled(t, "PublishToDLQ", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MalformedPayloadGoesToDLQ", func(t *testing.T) {
		processing := new(MockProcessingService)
		dlq := new(MockDLQProducer)
		handler := NewGoalEventHandler(newTestLogger(), processing, dlq)

		badValue := []byte(`{"user_id":`)
		dlq.On("PublishToDLQ", ctx, "bad-key", badValue, mock.AnythingOfType("string")).Return(nil)

		err := handler.HandleMessage(ctx, []byte("bad-key"), badValue)

		// DLQ took it, offset can commit
		assert.NoError(t, err)
		processing.AssertNotCalled(t, "RecordGoalCompletion", mock.Anything, mock.Anything)
		dlq.AssertExpectations(t)
	})

	t.Run("MalformedPayloadAndDLQFailure", func(t *testing.T) {
		processing := new(MockProcessingService)
		dlq := new(MockDLQProducer)
		handler := NewGoalEventHandler(newTestLogger(), processing, dlq)

		badValue := []byte(`not json`)
		dlq.On("PublishToDLQ", ctx, "bad-key", badValue, mock.AnythingOfType("string")).Return(errors.New("kafka down"))

		err := handler.HandleMessage(ctx, []byte("bad-key"), badValue)

		assert.Error(t, err)
		dlq.AssertExpectations(t)
	})

	t.Run("MalformedPayloadWithoutDLQ", func(t *testing.T) {
		processing := new(MockProcessingService)
		handler := NewGoalEventHandler(newTestLogger(), processing, nil)

		err := handler.HandleMessage(ctx, []byte("bad-key"), []byte(`not json`))

		assert.Error(t, err)
		processing.AssertNotCalled(t, "RecordGoalCompletion", mock.Anything, mock.Anything)
	})
}
