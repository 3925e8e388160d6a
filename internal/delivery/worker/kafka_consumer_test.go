package worker

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"campuseats/config"
	deliverycontext "campuseats/internal/delivery/context"
	"campuseats/internal/domain/constants"
	"campuseats/internal/domain/service"
	"campuseats/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

type recordingKitchen struct {
	usecase.KitchenUsecase

	requestIDs []string
}

func (k *recordingKitchen) HandleOrderEvent(ctx context.Context, _ *service.OrderEvent) error {
	k.requestIDs = append(k.requestIDs, deliverycontext.RequestIDFrom(ctx))

	return nil
}

func TestKafkaConsumer_DisabledWithoutKafkaProvider(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	consumer := NewKafkaConsumer(ConsumerParams{
		Lc:      lc,
		Cfg:     &config.Config{PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderLocal}},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Kitchen: &recordingKitchen{},
	})

	require.NoError(t, consumer.Serve(t.Context()))
	lc.RequireStart().RequireStop()
}

func TestKafkaConsumer_ApplyBindsRequestID(t *testing.T) {
	kitchen := &recordingKitchen{}
	c := &kafkaConsumer{
		kitchen: kitchen,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	require.NoError(t, c.apply(t.Context(), &service.OrderEvent{OrderID: 1}, "req-kafka"))
	require.NoError(t, c.apply(t.Context(), &service.OrderEvent{OrderID: 2}, ""))

	require.Len(t, kitchen.requestIDs, 2)
	assert.Equal(t, "req-kafka", kitchen.requestIDs[0])
	assert.NotEmpty(t, kitchen.requestIDs[1])
}
