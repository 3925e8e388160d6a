package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"campuseats/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer used by the publisher
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaPublisher implements EventPublisher on a Kafka topic, keyed by order ID
type kafkaPublisher struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// NewKafkaPublisher creates a publisher writing to the given brokers and topic
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) service.EventPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           100 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
	}, topic, logger)
}

func newKafkaPublisher(writer messageWriter, topic string, logger *slog.Logger) *kafkaPublisher {
	return &kafkaPublisher{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

// PublishOrderEvent writes the event as JSON; the key pins all events of one order to one partition
func (p *kafkaPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	attrs := eventAttributes(event)
	msg := kafka.Message{
		Key:   []byte(attrs[AttrOrderID]),
		Value: data,
	}
	for _, key := range sortedAttributeKeys(attrs) {
		msg.Headers = append(msg.Headers, kafka.Header{Key: key, Value: []byte(attrs[key])})
	}

	p.logger.Debug("[Kafka] Publishing event",
		slog.String("topic", p.topic),
		slog.String("type", event.Type),
		slog.Int64("order_id", event.OrderID),
	)

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrapf(err, "write to topic %s", p.topic)
	}

	return nil
}

// Close flushes pending writes and releases connections
func (p *kafkaPublisher) Close() error {
	return errors.WithStack(p.writer.Close())
}
