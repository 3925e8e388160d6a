package memory

import (
	"context"
	"sync"

	"campuseats/internal/domain/entity"
	"campuseats/internal/domain/repository"
	"campuseats/internal/errors"
)

// orderRepository stores clones and hands out clones; ids are never reused.
type orderRepository struct {
	mu     sync.RWMutex
	nextID int64
	orders map[int64]*entity.Order
	order  []int64
}

// NewOrderRepository creates an empty in-memory order store.
func NewOrderRepository() repository.OrderRepository {
	return &orderRepository{
		nextID: 1,
		orders: make(map[int64]*entity.Order),
	}
}

func (r *orderRepository) Create(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++

	r.orders[order.ID] = order.Clone()
	r.order = append(r.order, order.ID)

	return nil
}

func (r *orderRepository) FindByID(_ context.Context, id int64) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, errors.WithStack(repository.ErrOrderNotFound)
	}

	return order.Clone(), nil
}

func (r *orderRepository) UpdateStatus(_ context.Context, id int64, status string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, errors.WithStack(repository.ErrOrderNotFound)
	}
	order.Status = status

	return order.Clone(), nil
}

func (r *orderRepository) ListByUserID(_ context.Context, userID int64) ([]*entity.Order, error) {
	return r.filter(func(o *entity.Order) bool {
		return o.UserID != nil && *o.UserID == userID
	}), nil
}

func (r *orderRepository) List(_ context.Context) ([]*entity.Order, error) {
	return r.filter(func(*entity.Order) bool { return true }), nil
}

func (r *orderRepository) filter(keep func(*entity.Order) bool) []*entity.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Order, 0)
	for _, id := range r.order {
		if o := r.orders[id]; keep(o) {
			out = append(out, o.Clone())
		}
	}

	return out
}
