package service

import (
	"context"
	"time"
)

// Order event types.
const (
	OrderEventCreated       = "order.created"
	OrderEventStatusChanged = "order.status_changed"
)

// OrderEvent is published whenever an order is created or changes status.
type OrderEvent struct {
	RequestID   string    `json:"request_id,omitempty"` // For distributed tracing
	Type        string    `json:"type"`
	OrderID     int64     `json:"order_id"`
	UserID      *int64    `json:"user_id,omitempty"`
	TokenNumber string    `json:"token_number"`
	Status      string    `json:"status"`
	TotalAmount int64     `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
