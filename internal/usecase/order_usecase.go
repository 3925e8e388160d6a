package usecase

import (
	"context"

	"campuseats/internal/domain/entity"
)

// SubmitOrderInput is a cart snapshot plus contact details.
type SubmitOrderInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	// TotalAmount is optional; when present it must equal the recomputed total.
	TotalAmount *int64
	// Status is optional and defaults to "ordered".
	Status string
	Items  []entity.OrderItem
}

// OrderUsecase defines order submission and the kitchen-facing order operations.
type OrderUsecase interface {
	// Submit validates and persists the order, linking it to sessionUserID when set.
	Submit(ctx context.Context, input *SubmitOrderInput, sessionUserID *int64) (*entity.Order, error)

	Get(ctx context.Context, id int64) (*entity.Order, error)

	UpdateStatus(ctx context.Context, id int64, status string) (*entity.Order, error)

	// ListByUser never includes guest orders.
	ListByUser(ctx context.Context, userID int64) ([]*entity.Order, error)

	ListAll(ctx context.Context) ([]*entity.Order, error)

	// PaymentQR renders the manual UPI payment step for the order as a PNG.
	PaymentQR(ctx context.Context, id int64) ([]byte, error)
}
