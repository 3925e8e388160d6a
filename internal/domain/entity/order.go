package entity

import (
	"regexp"
	"slices"
	"time"
)

// Known order statuses. Status is free-form; these are the values the kitchen flow uses.
const (
	OrderStatusPending    = "pending"
	OrderStatusOrdered    = "ordered"
	OrderStatusProcessing = "processing"
	OrderStatusReady      = "ready"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"

	// DefaultOrderStatus is applied when a submission omits the status.
	DefaultOrderStatus = OrderStatusOrdered

	// MaxOrderStatusLength bounds free-form status values.
	MaxOrderStatusLength = 32
)

// Contact and line-item bounds. Name and email limits match the orders table columns.
const (
	MinCustomerNameLength  = 3
	MaxCustomerNameLength  = 100
	MaxCustomerEmailLength = 254

	MaxItemPrice    int64 = 1_000_000
	MaxItemQuantity       = 1_000
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// IsValidPhone reports whether phone is 10 to 15 digits with an optional leading plus.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// IsTerminalOrderStatus reports whether no further kitchen work is expected.
func IsTerminalOrderStatus(status string) bool {
	return status == OrderStatusCompleted || status == OrderStatusCancelled
}

// OrderItem is one cart line frozen at submission time.
type OrderItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// Subtotal returns price × quantity.
func (i OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Order is a submitted cart plus contact details.
// Items is a snapshot and must never alias catalog or caller memory.
type Order struct {
	ID            int64       `json:"id"`
	UserID        *int64      `json:"userId"` // nil for guest orders
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	CustomerPhone string      `json:"customerPhone"`
	TotalAmount   int64       `json:"totalAmount"`
	Status        string      `json:"status"`
	Items         []OrderItem `json:"items"`
	TokenNumber   string      `json:"tokenNumber"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// Clone returns a deep copy of the order.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}

	c := *o
	c.Items = slices.Clone(o.Items)
	if o.UserID != nil {
		uid := *o.UserID
		c.UserID = &uid
	}

	return &c
}

// IsGuest reports whether the order has no owning user.
func (o *Order) IsGuest() bool {
	return o.UserID == nil
}

// SumItems returns the total of all item subtotals.
func SumItems(items []OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}

	return total
}
