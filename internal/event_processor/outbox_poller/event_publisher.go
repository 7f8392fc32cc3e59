package outbox_poller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fintrack-ledger/internal/domain/outbox"
	"github.com/fintrack-ledger/internal/domain/shared"
	"github.com/fintrack-ledger/internal/platform/messaging/producers"
)

// EventPublisher relays an outbox message to the event stream
type EventPublisher interface {
	PublishEvent(ctx context.Context, message *outbox.Message) error
}

// EventPublisherImpl implements EventPublisher on the Kafka producer
type EventPublisherImpl struct {
	outboxRepo outbox.Repository
	producer   producers.MessagePublisher
	logger     *slog.Logger
}

// NewEventPublisher creates a new publisher
func NewEventPublisher(
	outboxRepo outbox.Repository,
	producer producers.MessagePublisher,
	logger *slog.Logger,
) EventPublisher {
	return &EventPublisherImpl{
		outboxRepo: outboxRepo,
		producer:   producer,
		logger:     logger,
	}
}

// PublishEvent pushes the goal-completed event to Kafka and marks the outbox
// row processed. A payload that cannot be decoded is marked
// FAILED_TO_PUBLISH immediately; retrying it would never succeed.
func (p *EventPublisherImpl) PublishEvent(ctx context.Context, message *outbox.Message) error {
	event, err := message.GoalCompletedEvent()
	if err != nil {
		p.logger.Error("Failed to unmarshal goal event from outbox payload",
			"outbox_id", message.ID, "event_id", message.EventID, "error", err,
		)
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); updateErr != nil {
			p.logger.Error("Also failed to update outbox status after unmarshal error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("unmarshal payload for outbox %d failed: %w", message.ID, err)
	}

	logger := p.logger
	if event.CorrelationID != "" {
		logger = p.logger.With("correlation_id", event.CorrelationID)
	}

	if err := p.producer.Publish(ctx, event.EventID.String(), event); err != nil {
		logger.Error("Failed to publish goal event", "outbox_id", message.ID, "event_id", event.EventID, "error", err)
		return fmt.Errorf("failed to publish goal event %s: %w", event.EventID, err)
	}

	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusProcessed); err != nil {
		logger.Error("Failed to update outbox message status to PROCESSED",
			"outbox_id", message.ID, "event_id", event.EventID, "error", err,
		)
		return fmt.Errorf("event %s published, but failed to mark outbox %d as PROCESSED: %w", event.EventID, message.ID, err)
	}

	logger.Info("Outbox message published and marked as PROCESSED", "outbox_id", message.ID, "event_id", event.EventID)
	return nil
}
