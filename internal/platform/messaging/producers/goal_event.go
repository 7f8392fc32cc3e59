package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/fintrack-ledger/internal/config"
	"github.com/segmentio/kafka-go"
)

// GoalEventProducer publishes goal-completed events relayed from the outbox
type GoalEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewGoalEventProducer ensures the goal events topic exists and builds a
// synchronous writer for it.
func NewGoalEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*GoalEventProducer, error) {
	if cfg.GoalEventsTopic == "" {
		return nil, fmt.Errorf("kafka goal events topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for goal event producer: %w", err)
	}
	defer conn.Close()

	if err := createKafkaTopicIfNotExists(conn, cfg.GoalEventsTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure goal events topic %s exists: %w", cfg.GoalEventsTopic, err)
	}

	return &GoalEventProducer{
		logger: logger,
		writer: newGoalEventWriter(cfg),
		topic:  cfg.GoalEventsTopic,
	}, nil
}

// newGoalEventWriter builds the relay writer. Synchronous with full acks:
// the relay marks an outbox row processed when WriteMessages returns nil,
// so the writer must not report success before the broker acknowledges.
func newGoalEventWriter(cfg *config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.GoalEventsTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		WriteTimeout: cfg.MaxWait,
	}
}

func (p *GoalEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal goal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish goal event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish goal event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published goal event", "topic", p.topic, "key", key)
	return nil
}

func (p *GoalEventProducer) Close() error {
	p.logger.Info("Closing goal event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
