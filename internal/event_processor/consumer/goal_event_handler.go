// Package consumer handles goal events arriving from Kafka.
package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/fintrack-ledger/internal/domain/shared"
	"github.com/fintrack-ledger/internal/event_processor/service"
	"github.com/fintrack-ledger/internal/platform/messaging/producers"
)

// GoalEventHandler handles incoming goal-completed messages from Kafka
type GoalEventHandler struct {
	processingService service.ProcessingService
	producer          producers.DeadLetterPublisher
	logger            *slog.Logger
}

// NewGoalEventHandler creates a new handler
func NewGoalEventHandler(
	logger *slog.Logger,
	processingService service.ProcessingService,
	producer producers.DeadLetterPublisher,
) *GoalEventHandler {
	return &GoalEventHandler{
		processingService: processingService,
		producer:          producer,
		logger:            logger,
	}
}

// HandleMessage processes one Kafka message. Undecodable payloads go to the
// DLQ so the partition keeps moving; processing failures leave the offset
// uncommitted for redelivery.
func (h *GoalEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var event shared.GoalCompletedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		unmarshalErrorMsg := "Failed to unmarshal goal event from Kafka message"
		h.logger.Error(unmarshalErrorMsg,
			"error", err,
			"message_key", string(key),
		)

		if h.producer != nil {
			dlqReason := fmt.Sprintf("%s: %s", unmarshalErrorMsg, err.Error())
			if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, dlqReason); dlqErr != nil {
				h.logger.Error("Failed to publish message to DLQ after unmarshal error",
					"dlq_error", dlqErr,
					"original_error", err,
					"message_key", string(key),
				)
			} else {
				h.logger.Info("Published unprocessable message to DLQ", "message_key", string(key), "reason", dlqReason)
				// Message handled, commit offset
				return nil
			}
		}
		// Allow Kafka retries
		return fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	logger := h.logger
	if event.CorrelationID != "" {
		logger = h.logger.With("correlation_id", event.CorrelationID)
	}

	logger.Info("Received goal event for processing",
		"event_id", event.EventID,
		"goal_id", event.GoalID,
		"user_id", event.UserID,
	)

	if err := h.processingService.RecordGoalCompletion(ctx, &event); err != nil {
		logger.Error("Failed to process goal event",
			"event_id", event.EventID,
			"goal_id", event.GoalID,
			"error", err,
		)
		return fmt.Errorf("processing goal event %s failed: %w", event.EventID, err)
	}

	logger.Info("Successfully processed goal event", "event_id", event.EventID)
	return nil
}
