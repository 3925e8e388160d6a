package worker

import (
	"context"
	"log/slog"
	"sync"

	"campuseats/config"
	"campuseats/internal/delivery"
	deliverycontext "campuseats/internal/delivery/context"
	"campuseats/internal/domain/constants"
	"campuseats/internal/domain/service"
	"campuseats/internal/infra/pubsub"
	"campuseats/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const defaultKafkaGroupID = "campuseats-kitchen"

type kafkaConsumer struct {
	subscriber *pubsub.KafkaSubscriber
	kitchen    usecase.KitchenUsecase
	logger     *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// ConsumerParams holds dependencies for the Kafka consumer
type ConsumerParams struct {
	fx.In

	Lc      fx.Lifecycle
	Cfg     *config.Config
	Logger  *slog.Logger
	Kitchen usecase.KitchenUsecase
}

// NewKafkaConsumer returns a Delivery that feeds the kitchen from Kafka. With any
// other provider Serve returns at once and the worker relies on HTTP push only.
func NewKafkaConsumer(params ConsumerParams) delivery.Delivery {
	ps := params.Cfg.PubSub
	if ps == nil || ps.Provider != constants.PubSubProviderKafka {
		return &kafkaConsumer{logger: params.Logger}
	}

	groupID := ps.KafkaGroupID
	if groupID == "" {
		groupID = defaultKafkaGroupID
	}

	c := &kafkaConsumer{
		subscriber: pubsub.NewKafkaSubscriber(ps.KafkaBrokers, ps.KafkaTopic, groupID, params.Logger),
		kitchen:    params.Kitchen,
		logger:     params.Logger,
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			c.mu.Lock()
			if c.cancel != nil {
				c.cancel()
			}
			c.mu.Unlock()

			return c.subscriber.Close()
		},
	})

	return c
}

// Serve consumes until the app stops.
func (c *kafkaConsumer) Serve(ctx context.Context) error {
	if c.subscriber == nil {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()

	c.logger.Info("Starting Kafka order event consumer")

	return c.subscriber.Run(ctx, c.apply)
}

func (c *kafkaConsumer) apply(ctx context.Context, event *service.OrderEvent, requestID string) error {
	if requestID == "" {
		requestID = uuid.New().String()
	}

	ctx, _ = deliverycontext.WithRequestScope(ctx, requestID, c.logger)

	return c.kitchen.HandleOrderEvent(ctx, event)
}
