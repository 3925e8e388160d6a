package usecase

import (
	"context"
	"time"

	"campuseats/internal/domain/entity"
)

// IssuedSession carries what the delivery layer needs to set the session cookie.
type IssuedSession struct {
	ID          string
	CookieValue string
	ExpiresAt   time.Time
}

// SessionUsecase manages the Anonymous ⇄ Authenticated binding behind the session cookie.
type SessionUsecase interface {
	// Issue binds a new session to the user.
	Issue(ctx context.Context, userID int64) (*IssuedSession, error)

	// Resolve maps a cookie value to its session. A missing, tampered, expired or
	// unmapped cookie yields (nil, nil); only store failures return an error.
	Resolve(ctx context.Context, cookieValue string) (*entity.Session, error)

	// Destroy removes the session. It is idempotent.
	Destroy(ctx context.Context, sessionID string) error

	// PurgeExpired removes expired sessions and reports how many were removed.
	PurgeExpired(ctx context.Context) (int, error)

	// TTL is the fixed lifetime given to new sessions.
	TTL() time.Duration
}
