// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"campuseats/internal/domain/entity"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when a user with the same normalized email already exists.
	ErrEmailTaken = errors.New("email already taken")
)

// UserRepository defines the standard operations for user persistence.
// Users are never updated or deleted.
type UserRepository interface {
	// Create assigns the next ID and CreatedAt, then persists the user.
	// Fails with ErrEmailTaken on a case-insensitive duplicate.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByEmail retrieves a single user by email, ignoring case.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
