package model

import (
	"testing"
	"time"

	"campuseats/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestOrderModel_RoundTripDoesNotAlias(t *testing.T) {
	uid := int64(5)
	order := &entity.Order{
		ID:          3,
		UserID:      &uid,
		TotalAmount: 100,
		Status:      entity.OrderStatusOrdered,
		Items:       []entity.OrderItem{{ID: 1, Name: "Dosa", Price: 50, Quantity: 2}},
		TokenNumber: "20250307-100",
		CreatedAt:   time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC),
	}

	m := FromOrderDomain(order)
	order.Items[0].Price = 1
	*order.UserID = 9

	back := ToOrderDomain(m)
	assert.Equal(t, int64(50), back.Items[0].Price)
	assert.Equal(t, int64(5), *back.UserID)
	assert.Equal(t, "20250307-100", back.TokenNumber)
}

func TestToOrderDomain_EmptyItems(t *testing.T) {
	back := ToOrderDomain(&OrderModel{ID: 1})
	assert.NotNil(t, back.Items)
	assert.Empty(t, back.Items)
}

func TestUserModel_RoundTrip(t *testing.T) {
	user := &entity.User{ID: 1, Name: "Asha", Email: "asha@campus.edu", PasswordHash: "$2a$..."}
	assert.Equal(t, user, ToUserDomain(FromUserDomain(user)))
	assert.Nil(t, ToUserDomain(nil))
}
