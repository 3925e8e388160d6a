package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"campuseats/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// OrderEventHandler applies one decoded order event.
type OrderEventHandler func(ctx context.Context, event *service.OrderEvent, requestID string) error

// messageReader is the subset of *kafka.Reader used by the subscriber
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSubscriber consumes order events from a topic as part of a consumer group.
type KafkaSubscriber struct {
	reader messageReader
	topic  string
	logger *slog.Logger
}

// NewKafkaSubscriber joins groupID on topic.
func NewKafkaSubscriber(brokers, topic, groupID string, logger *slog.Logger) *KafkaSubscriber {
	return newKafkaSubscriber(kafka.NewReader(kafka.ReaderConfig{
		Brokers:  splitBrokers(brokers),
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 1 << 20,
	}), topic, logger)
}

func newKafkaSubscriber(reader messageReader, topic string, logger *slog.Logger) *KafkaSubscriber {
	return &KafkaSubscriber{reader: reader, topic: topic, logger: logger}
}

// Run fetches until ctx is cancelled. Undecodable messages and events the
// handler rejects are logged and committed so they never block the partition.
func (s *KafkaSubscriber) Run(ctx context.Context, handle OrderEventHandler) error {
	for {
		msg, err := s.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return errors.Wrapf(err, "fetch from topic %s", s.topic)
		}

		s.dispatch(ctx, msg, handle)

		if err := s.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return errors.Wrapf(err, "commit offset %d", msg.Offset)
		}
	}
}

func (s *KafkaSubscriber) dispatch(ctx context.Context, msg kafka.Message, handle OrderEventHandler) {
	var event service.OrderEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		s.logger.Error("[Kafka] Skipping undecodable message",
			slog.Int("partition", msg.Partition),
			slog.Int64("offset", msg.Offset),
			slog.Any("error", err),
		)

		return
	}

	requestID := event.RequestID
	for _, h := range msg.Headers {
		if h.Key == AttrRequestID && len(h.Value) > 0 {
			requestID = string(h.Value)
		}
	}

	if err := handle(ctx, &event, requestID); err != nil {
		s.logger.Error("[Kafka] Dropping order event",
			slog.String("type", event.Type),
			slog.Int64("order_id", event.OrderID),
			slog.Any("error", err),
		)
	}
}

// Close leaves the consumer group.
func (s *KafkaSubscriber) Close() error {
	return errors.WithStack(s.reader.Close())
}
