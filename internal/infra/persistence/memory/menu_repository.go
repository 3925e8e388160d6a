package memory

import (
	"context"

	"campuseats/internal/domain/entity"
	"campuseats/internal/domain/repository"
	"campuseats/internal/errors"
)

// menuRepository is immutable after construction, so it needs no lock.
type menuRepository struct {
	items []entity.MenuItem
	byID  map[int64]int
}

// NewMenuRepository builds a catalog over a copy of items, keeping their order.
func NewMenuRepository(items []entity.MenuItem) repository.MenuRepository {
	r := &menuRepository{
		items: make([]entity.MenuItem, len(items)),
		byID:  make(map[int64]int, len(items)),
	}
	copy(r.items, items)
	for i, item := range r.items {
		r.byID[item.ID] = i
	}

	return r
}

// NewDefaultMenuRepository returns the catalog seeded with DefaultMenu.
func NewDefaultMenuRepository() repository.MenuRepository {
	return NewMenuRepository(DefaultMenu())
}

func (r *menuRepository) List(_ context.Context) ([]*entity.MenuItem, error) {
	out := make([]*entity.MenuItem, 0, len(r.items))
	for i := range r.items {
		item := r.items[i]
		out = append(out, &item)
	}

	return out, nil
}

func (r *menuRepository) ListByCategory(_ context.Context, category entity.Category) ([]*entity.MenuItem, error) {
	out := make([]*entity.MenuItem, 0)
	for i := range r.items {
		if r.items[i].Category != category {
			continue
		}
		item := r.items[i]
		out = append(out, &item)
	}

	return out, nil
}

func (r *menuRepository) FindByID(_ context.Context, id int64) (*entity.MenuItem, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, errors.WithStack(repository.ErrMenuItemNotFound)
	}
	item := r.items[i]

	return &item, nil
}
