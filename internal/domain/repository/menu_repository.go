package repository

import (
	"context"
	"errors"

	"campuseats/internal/domain/entity"
)

// ErrMenuItemNotFound is returned when no catalog item has the given ID.
var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuRepository is a read-only view over the catalog, populated once at boot.
type MenuRepository interface {
	// List returns every item in insertion order.
	List(ctx context.Context) ([]*entity.MenuItem, error)

	// ListByCategory filters by exact tag; unknown tags yield an empty slice.
	ListByCategory(ctx context.Context, category entity.Category) ([]*entity.MenuItem, error)

	// FindByID retrieves a single item.
	FindByID(ctx context.Context, id int64) (*entity.MenuItem, error)
}
