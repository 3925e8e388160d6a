package impl

import (
	"context"
	"log/slog"
	"time"

	"campuseats/config"
	deliverycontext "campuseats/internal/delivery/context"
	"campuseats/internal/domain/entity"
	"campuseats/internal/domain/repository"
	"campuseats/internal/domain/service"
	"campuseats/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	sessionRepo repository.SessionRepository
	signer      service.SessionCookieSigner
	metrics     service.MetricsRecorder
	ttl         time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	SessionRepo repository.SessionRepository
	Signer      service.SessionCookieSigner
	Metrics     service.MetricsRecorder
	Config      *config.Config
	Logger      *slog.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		sessionRepo: params.SessionRepo,
		signer:      params.Signer,
		metrics:     params.Metrics,
		ttl:         params.Config.Session.TTL,
		now:         time.Now,
		logger:      params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

func (srv *sessionService) TTL() time.Duration {
	return srv.ttl
}

// Issue creates a session and signs its id into a cookie value.
func (srv *sessionService) Issue(ctx context.Context, userID int64) (*usecase.IssuedSession, error) {
	session, err := srv.sessionRepo.Create(ctx, userID, srv.ttl)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	cookieValue, err := srv.signer.Sign(session.ID, session.ExpiresAt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign session cookie")
	}

	srv.log(ctx).Debug("Session issued", slog.Int64("userID", userID), slog.Time("expiresAt", session.ExpiresAt))

	return &usecase.IssuedSession{
		ID:          session.ID,
		CookieValue: cookieValue,
		ExpiresAt:   session.ExpiresAt,
	}, nil
}

// Resolve returns the live session for a cookie, or nil when the caller is anonymous.
func (srv *sessionService) Resolve(ctx context.Context, cookieValue string) (*entity.Session, error) {
	if cookieValue == "" {
		return nil, nil
	}

	sessionID, err := srv.signer.Verify(cookieValue)
	if err != nil {
		srv.log(ctx).Debug("Rejected session cookie", slog.Any("error", err))

		return nil, nil
	}

	session, err := srv.sessionRepo.Find(ctx, sessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find session")
	}

	if session.Expired(srv.now()) {
		return nil, nil
	}

	return session, nil
}

// Destroy removes the session from the store.
func (srv *sessionService) Destroy(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := srv.sessionRepo.Delete(ctx, sessionID); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	return nil
}

// PurgeExpired sweeps sessions whose expiry has passed.
func (srv *sessionService) PurgeExpired(ctx context.Context) (int, error) {
	removed, err := srv.sessionRepo.DeleteExpired(ctx, srv.now())
	if err != nil {
		return 0, errors.Wrap(err, "failed to purge expired sessions")
	}

	if removed > 0 {
		srv.metrics.SessionsPurged(removed)
		srv.log(ctx).Info("Purged expired sessions", slog.Int("count", removed))
	}

	return removed, nil
}
