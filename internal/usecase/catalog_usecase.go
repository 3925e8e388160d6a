package usecase

import (
	"context"

	"campuseats/internal/domain/entity"
)

// CatalogUsecase exposes read-only catalog queries.
type CatalogUsecase interface {
	ListAll(ctx context.Context) ([]*entity.MenuItem, error)

	// ListByCategory returns an empty slice for unknown categories.
	ListByCategory(ctx context.Context, category string) ([]*entity.MenuItem, error)

	GetByID(ctx context.Context, id int64) (*entity.MenuItem, error)

	Categories() []entity.Category
}
