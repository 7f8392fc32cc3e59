package producers

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessagePublisher publishes serialized events to a primary topic. The
// outbox relay uses it to forward goal events without knowing the transport.
type MessagePublisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// DeadLetterPublisher moves undecodable messages to a dead letter topic
type DeadLetterPublisher interface {
	PublishToDLQ(ctx context.Context, key string, originalMessageValue []byte, reason string) error
	Close() error
}

// KafkaWriter wraps kafka.Writer methods for testing
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
