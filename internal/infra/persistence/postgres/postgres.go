// Package postgres stores users and orders in PostgreSQL through GORM.
package postgres

import (
	"context"
	"log/slog"

	"campuseats/config"
	"campuseats/internal/domain/lifecycle"
	"campuseats/internal/errors"
	"campuseats/internal/infra/metrics"

	"github.com/prometheus/client_golang/prometheus/collectors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

// New opens the pool described by the postgres section, pings it on start and
// exports its connection stats as campuseats_go_sql_* when metrics are wired.
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres section is required for the postgres storage driver")
	}

	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	// Map driver errors (e.g. 23505) to gorm.ErrDuplicatedKey and friends.
	db.Config.TranslateError = true
	db = db.Session(&gorm.Session{
		// Every repository write is a single statement.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	if params.Metrics != nil {
		if err := params.Metrics.Registry().Register(collectors.NewDBStatsCollector(sqlDB, "campuseats")); err != nil {
			return nil, errors.Wrap(err, "failed to register pool collector")
		}
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}
			params.Logger.Info("PostgreSQL connected")

			return nil
		},
		OnStop: func(_ context.Context) error {
			return errors.WithStack(sqlDB.Close())
		},
	})

	return db, nil
}
