package main

import (
	"context"
	"log/slog"
	"os"

	"campuseats/config"
	"campuseats/internal/delivery"
	"campuseats/internal/delivery/api"
	apimiddleware "campuseats/internal/delivery/api/middleware"
	"campuseats/internal/delivery/api/router/handler"
	"campuseats/internal/domain/service"
	"campuseats/internal/infra/auth"
	logs "campuseats/internal/infra/log"
	"campuseats/internal/infra/metrics"
	"campuseats/internal/infra/persistence/memory"
	"campuseats/internal/infra/pubsub"
	"campuseats/internal/infra/qrcode"
	"campuseats/internal/infra/scheduler"
	"campuseats/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		pubsub.Module,
		fx.Invoke(
			startScheduler,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		metrics.New,
		func(m *metrics.Metrics) service.MetricsRecorder { return m },
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newStorage,
			newSessionRepository,
			memory.NewDefaultMenuRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTSessionSigner,
			auth.NewPickupTokenGenerator,
			qrcode.NewPaymentQRService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewUserService,
			impl.NewCatalogService,
			impl.NewOrderService,
			scheduler.New,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewSessionMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewMenuHandler,
			handler.NewOrderHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startScheduler forces construction so the sweep job registers its lifecycle hooks.
func startScheduler(*scheduler.Scheduler) {}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
