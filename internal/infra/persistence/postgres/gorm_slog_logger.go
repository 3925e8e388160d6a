package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campuseats/config"
	deliverycontext "campuseats/internal/delivery/context"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultGormSlowThreshold = 200 * time.Millisecond

// gormSlogLogger routes GORM output to the request-scoped slog logger, so
// query logs carry the request_id of the handler that issued them.
type gormSlogLogger struct {
	fallback      *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func newGormSlogLogger(fallback *slog.Logger, cfg *config.Config) logger.Interface {
	level := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = logger.Info
	}

	return &gormSlogLogger{
		fallback:      fallback,
		level:         level,
		slowThreshold: defaultGormSlowThreshold,
	}
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Info, slog.LevelInfo, msg, args...)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Warn, slog.LevelWarn, msg, args...)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Error, slog.LevelError, msg, args...)
}

func (l *gormSlogLogger) printf(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args ...any) {
	if l.level < threshold {
		return
	}
	l.log(ctx).LogAttrs(ctx, level, "GORM", slog.String("message", fmt.Sprintf(msg, args...)))
}

// Trace logs failed queries at error, slow ones at warn, and everything else only in Info mode.
// Record-not-found is an expected outcome for lookups and is never logged.
func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold

	var (
		level slog.Level
		msg   string
	)
	switch {
	case failed && l.level >= logger.Error:
		level, msg = slog.LevelError, "Query failed"
	case slow && l.level >= logger.Warn:
		level, msg = slog.LevelWarn, "Slow query"
	case l.level >= logger.Info:
		level, msg = slog.LevelInfo, "Query"
	default:
		return
	}

	sql, rows := fc()
	attrs := []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
	if failed {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	l.log(ctx).LogAttrs(ctx, level, msg, attrs...)
}

func (l *gormSlogLogger) log(ctx context.Context) *slog.Logger {
	if l.fallback == nil {
		return slog.New(slog.DiscardHandler)
	}

	return deliverycontext.LoggerFrom(ctx, l.fallback)
}
