package repository

import (
	"context"
	"errors"

	"campuseats/internal/domain/entity"
)

// ErrOrderNotFound is returned when no order has the given ID.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository persists orders. Implementations hand out copies only,
// so callers can never mutate a stored snapshot. Listings are ordered by ID.
type OrderRepository interface {
	// Create assigns the next ID and stores a deep copy of the order.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order.
	FindByID(ctx context.Context, id int64) (*entity.Order, error)

	// UpdateStatus replaces the status and returns the updated order.
	// Unknown IDs fail with ErrOrderNotFound and leave the store untouched.
	UpdateStatus(ctx context.Context, id int64, status string) (*entity.Order, error)

	// ListByUserID returns orders owned by the user. Guest orders never match.
	ListByUserID(ctx context.Context, userID int64) ([]*entity.Order, error)

	// List returns every order.
	List(ctx context.Context) ([]*entity.Order, error)
}
