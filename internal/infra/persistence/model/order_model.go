package model

import (
	"slices"
	"time"

	"campuseats/internal/domain/entity"

	"gorm.io/datatypes"
)

// OrderModel mirrors the 'orders' table. Items is the JSONB snapshot taken at submission.
type OrderModel struct {
	ID            int64                                  `gorm:"primaryKey;autoIncrement"`
	UserID        *int64                                 `gorm:"index"`
	CustomerName  string                                 `gorm:"type:varchar(100);not null"`
	CustomerEmail string                                 `gorm:"type:varchar(255);not null"`
	CustomerPhone string                                 `gorm:"type:varchar(20);not null"`
	TotalAmount   int64                                  `gorm:"not null"`
	Status        string                                 `gorm:"type:varchar(32);not null"`
	Items         datatypes.JSONType[[]entity.OrderItem] `gorm:"type:jsonb;not null"`
	TokenNumber   string                                 `gorm:"type:varchar(16);not null"`
	CreatedAt     time.Time                              `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// ToOrderDomain maps a persistence model to a domain entity.
func ToOrderDomain(m *OrderModel) *entity.Order {
	if m == nil {
		return nil
	}

	o := &entity.Order{
		ID:            m.ID,
		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		CustomerPhone: m.CustomerPhone,
		TotalAmount:   m.TotalAmount,
		Status:        m.Status,
		Items:         slices.Clone(m.Items.Data()),
		TokenNumber:   m.TokenNumber,
		CreatedAt:     m.CreatedAt,
	}
	if m.UserID != nil {
		uid := *m.UserID
		o.UserID = &uid
	}
	if o.Items == nil {
		o.Items = []entity.OrderItem{}
	}

	return o
}

// FromOrderDomain maps a domain entity to a persistence model.
func FromOrderDomain(o *entity.Order) *OrderModel {
	c := o.Clone()

	return &OrderModel{
		ID:            c.ID,
		UserID:        c.UserID,
		CustomerName:  c.CustomerName,
		CustomerEmail: c.CustomerEmail,
		CustomerPhone: c.CustomerPhone,
		TotalAmount:   c.TotalAmount,
		Status:        c.Status,
		Items:         datatypes.NewJSONType(c.Items),
		TokenNumber:   c.TokenNumber,
		CreatedAt:     c.CreatedAt,
	}
}
