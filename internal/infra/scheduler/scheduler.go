// Package scheduler runs periodic maintenance jobs inside the API process.
package scheduler

import (
	"context"
	"log/slog"

	"campuseats/config"
	"campuseats/internal/usecase"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle

	Config   *config.Config
	Logger   *slog.Logger
	Sessions usecase.SessionUsecase
}

// Scheduler wraps a cron runner with the registered jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New registers the session sweep on session.sweepSchedule and starts it with the app.
func New(params Params) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithChain(cron.Recover(cronLogger{params.Logger}))),
		logger: params.Logger,
	}

	schedule := params.Config.Session.SweepSchedule
	if _, err := s.cron.AddFunc(schedule, func() {
		s.purgeSessions(params.Sessions)
	}); err != nil {
		return nil, errors.Wrapf(err, "invalid session sweep schedule %q", schedule)
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.cron.Start()
			s.logger.Info("Scheduler started", slog.String("session_sweep", schedule))

			return nil
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-s.cron.Stop().Done():
				return nil
			case <-ctx.Done():
				return errors.WithStack(ctx.Err())
			}
		},
	})

	return s, nil
}

func (s *Scheduler) purgeSessions(sessions usecase.SessionUsecase) {
	removed, err := sessions.PurgeExpired(context.Background())
	if err != nil {
		s.logger.Error("Session sweep failed", slog.Any("error", err))

		return
	}
	s.logger.Debug("Session sweep finished", slog.Int("removed", removed))
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append([]any{slog.Any("error", err)}, keysAndValues...)...)
}
