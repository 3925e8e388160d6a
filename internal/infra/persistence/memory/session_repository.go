package memory

import (
	"context"
	"sync"
	"time"

	"campuseats/internal/domain/entity"
	"campuseats/internal/domain/repository"
	"campuseats/internal/errors"

	"github.com/google/uuid"
)

type sessionRepository struct {
	mu       sync.Mutex
	sessions map[string]entity.Session
	now      func() time.Time
}

// NewSessionRepository creates an in-memory session store. Expired entries are
// invisible to Find and removed by DeleteExpired.
func NewSessionRepository() repository.SessionRepository {
	return &sessionRepository{
		sessions: make(map[string]entity.Session),
		now:      time.Now,
	}
}

func (r *sessionRepository) Create(_ context.Context, userID int64, ttl time.Duration) (*entity.Session, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Wrap(err, "generate session id")
	}

	now := r.now()
	session := entity.Session{
		ID:        id.String(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()

	return &session, nil
}

func (r *sessionRepository) Find(_ context.Context, id string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok || session.Expired(r.now()) {
		return nil, errors.WithStack(repository.ErrSessionNotFound)
	}

	return &session, nil
}

func (r *sessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()

	return nil
}

func (r *sessionRepository) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if session.Expired(now) {
			delete(r.sessions, id)
			removed++
		}
	}

	return removed, nil
}
