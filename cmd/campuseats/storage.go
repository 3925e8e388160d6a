package main

import (
	"log/slog"

	"campuseats/config"
	"campuseats/internal/domain/repository"
	"campuseats/internal/errors"
	"campuseats/internal/infra/metrics"
	"campuseats/internal/infra/persistence/memory"
	"campuseats/internal/infra/persistence/postgres"
	"campuseats/internal/infra/persistence/redisstore"

	"go.uber.org/fx"
)

type storageParams struct {
	fx.In

	Lc      fx.Lifecycle
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

type storageResult struct {
	fx.Out

	Users  repository.UserRepository
	Orders repository.OrderRepository
}

// newStorage picks the user and order store from storage.driver. The Postgres
// pool is only opened when it is selected.
func newStorage(params storageParams) (storageResult, error) {
	switch params.Config.Storage.Driver {
	case config.StoragePostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    params.Logger,
			Metrics:   params.Metrics,
		})
		if err != nil {
			return storageResult{}, err
		}
		params.Logger.Info("Using PostgreSQL storage")

		return storageResult{
			Users:  postgres.NewUserRepository(db),
			Orders: postgres.NewOrderRepository(db),
		}, nil

	case config.StorageMemory:
		params.Logger.Warn("Using in-memory storage, data is lost on restart")

		return storageResult{
			Users:  memory.NewUserRepository(),
			Orders: memory.NewOrderRepository(),
		}, nil
	}

	return storageResult{}, errors.Errorf("unsupported storage driver %q", params.Config.Storage.Driver)
}

// newSessionRepository picks the session store from session.store.
func newSessionRepository(params storageParams) (repository.SessionRepository, error) {
	switch params.Config.Session.Store {
	case config.SessionStoreRedis:
		client, err := redisstore.NewClient(redisstore.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}

		return redisstore.NewSessionRepository(client), nil

	case config.SessionStoreMemory:
		return memory.NewSessionRepository(), nil
	}

	return nil, errors.Errorf("unsupported session store %q", params.Config.Session.Store)
}
