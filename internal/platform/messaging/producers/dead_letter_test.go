package producers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDLQProducer_PublishToDLQ(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	t.Run("SuccessfulPublish", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &DLQProducer{
			logger:   logger,
			writer:   mockWriter,
			dlqTopic: "test-dlq",
		}

		key := "poison-key"
		originalValue := []byte(`{"user_id":`)
		reason := "unmarshal failed"

		mockWriter.On("WriteMessages", ctx, mock.MatchedBy(func(msgs []kafka.Message) bool {
			if len(msgs) != 1 {
				return false
			}
			msg := msgs[0]
			if string(msg.Key) != key {
				return false
			}
			if len(msg.Headers) != 1 || msg.Headers[0].Key != "dlq-reason" || string(msg.Headers[0].Value) != reason {
				return false
			}
			var payload struct {
				OriginalKey   string `json:"original_key"`
				OriginalValue string `json:"original_value"`
				DLQReason     string `json:"dlq_reason"`
			}
			if err := json.Unmarshal(msg.Value, &payload); err != nil {
				return false
			}
			return payload.OriginalKey == key && payload.OriginalValue == string(originalValue) && payload.DLQReason == reason
		})).Return(nil).Once()

		err := producer.PublishToDLQ(ctx, key, originalValue, reason)
		require.NoError(t, err)
		mockWriter.AssertExpectations(t)
	})

	t.Run("WriterError", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &DLQProducer{
			logger:   logger,
			writer:   mockWriter,
			dlqTopic: "test-dlq",
		}

		writerError := errors.New("kafka write error")
		mockWriter.On("WriteMessages", ctx, mock.AnythingOfType("[]kafka.Message")).Return(writerError).Once()

		err := producer.PublishToDLQ(ctx, "key", []byte("value"), "reason")
		require.Error(t, err)
		mockWriter.AssertExpectations(t)
	})

	t.Run("NilProducer", func(t *testing.T) {
		var producer *DLQProducer
		err := producer.PublishToDLQ(ctx, "key", []byte("value"), "reason")
		assert.Error(t, err)
	})
}

func TestDLQProducer_Close(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	t.Run("SuccessfulClose", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &DLQProducer{
			logger:   logger,
			writer:   mockWriter,
			dlqTopic: "test-dlq",
		}

		mockWriter.On("Close").Return(nil).Once()

		err := producer.Close()
		require.NoError(t, err)
		mockWriter.AssertExpectations(t)
	})

	t.Run("NilProducerCloseIsNoop", func(t *testing.T) {
		var producer *DLQProducer
		assert.NoError(t, producer.Close())
	})
}
