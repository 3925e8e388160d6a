package repository

import (
	"context"
	"errors"
	"time"

	"campuseats/internal/domain/entity"
)

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository maps opaque session IDs to user IDs.
type SessionRepository interface {
	// Create issues a new cryptographically random session ID for the user.
	Create(ctx context.Context, userID int64, ttl time.Duration) (*entity.Session, error)

	// Find resolves a session. Expired sessions fail with ErrSessionNotFound.
	Find(ctx context.Context, id string) (*entity.Session, error)

	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteExpired purges sessions expired at now and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
