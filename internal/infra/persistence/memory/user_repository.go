// Package memory provides mutex-guarded in-process implementations of the repositories.
// ID allocation and insertion happen under one lock, so each call is atomic.
package memory

import (
	"context"
	"sync"
	"time"

	"campuseats/internal/domain/entity"
	"campuseats/internal/domain/repository"
	"campuseats/internal/errors"
)

type userRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*entity.User
	byEmail map[string]int64
	now     func() time.Time
}

// NewUserRepository creates an empty in-memory user store.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		nextID:  1,
		byID:    make(map[int64]*entity.User),
		byEmail: make(map[string]int64),
		now:     time.Now,
	}
}

func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	key := entity.NormalizeEmail(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[key]; exists {
		return errors.WithStack(repository.ErrEmailTaken)
	}

	user.ID = r.nextID
	user.CreatedAt = r.now()
	r.nextID++

	stored := *user
	r.byID[stored.ID] = &stored
	r.byEmail[key] = stored.ID

	return nil
}

func (r *userRepository) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, errors.WithStack(repository.ErrUserNotFound)
	}
	out := *user

	return &out, nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[entity.NormalizeEmail(email)]
	if !ok {
		return nil, errors.WithStack(repository.ErrUserNotFound)
	}
	out := *r.byID[id]

	return &out, nil
}
