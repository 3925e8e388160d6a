package usecase

import (
	"context"
	"time"

	"campuseats/internal/domain/service"
)

// Ticket is the kitchen's view of an order still being worked on.
type Ticket struct {
	OrderID     int64     `json:"orderId"`
	TokenNumber string    `json:"tokenNumber"`
	Status      string    `json:"status"`
	TotalAmount int64     `json:"totalAmount"`
	ItemCount   int       `json:"itemCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// KitchenUsecase folds order events into a ticket board.
type KitchenUsecase interface {
	// HandleOrderEvent applies one event. Redelivered or stale events are ignored.
	HandleOrderEvent(ctx context.Context, event *service.OrderEvent) error

	// Tickets lists orders that are not completed or cancelled, oldest first.
	Tickets(ctx context.Context) []*Ticket
}
