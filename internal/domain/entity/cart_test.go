package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddMergesByID(t *testing.T) {
	cart := NewCart()
	cart.Add(CartItem{ID: 1, Name: "Masala Dosa", Price: 50, Quantity: 1})
	cart.Add(CartItem{ID: 2, Name: "Tea", Price: 10, Quantity: 2})
	cart.Add(CartItem{ID: 1, Name: "Masala Dosa", Price: 50, Quantity: 2})

	require.Equal(t, 2, cart.Len())
	items := cart.Items()
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 2, items[1].Quantity)
	assert.Equal(t, 5, cart.Count())
	assert.Equal(t, int64(170), cart.Total())
}

func TestCart_AddIgnoresNonPositiveQuantity(t *testing.T) {
	cart := NewCart()
	cart.Add(CartItem{ID: 1, Price: 50, Quantity: 0})
	cart.Add(CartItem{ID: 2, Price: 50, Quantity: -3})

	assert.True(t, cart.IsEmpty())
}

func TestCart_UpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		wantLines int
		wantQty   int
	}{
		{name: "positive sets quantity", quantity: 4, wantLines: 1, wantQty: 4},
		{name: "zero removes line", quantity: 0, wantLines: 0},
		{name: "negative removes line", quantity: -1, wantLines: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := NewCart()
			cart.Add(CartItem{ID: 7, Name: "Samosa", Price: 15, Quantity: 2})

			cart.UpdateQuantity(7, tt.quantity)

			require.Equal(t, tt.wantLines, cart.Len())
			if tt.wantLines > 0 {
				assert.Equal(t, tt.wantQty, cart.Items()[0].Quantity)
			}
		})
	}
}

func TestCart_RemoveAndClear(t *testing.T) {
	cart := NewCart()
	cart.Add(CartItem{ID: 1, Price: 10, Quantity: 1})
	cart.Add(CartItem{ID: 2, Price: 20, Quantity: 1})
	cart.Add(CartItem{ID: 3, Price: 30, Quantity: 1})

	cart.Remove(2)
	cart.Remove(99)
	require.Equal(t, 2, cart.Len())
	assert.Equal(t, int64(3), cart.Items()[1].ID)

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, int64(0), cart.Total())
}

func TestCart_ItemsReturnsCopy(t *testing.T) {
	cart := NewCart()
	cart.Add(CartItem{ID: 1, Price: 10, Quantity: 1})

	items := cart.Items()
	items[0].Quantity = 100

	assert.Equal(t, 1, cart.Items()[0].Quantity)
}

func TestCart_Snapshot(t *testing.T) {
	menu := &MenuItem{ID: 1, Name: "Dosa", Price: 50, Category: CategoryBreakfast, ImageURL: "/img/dosa.jpg"}
	cart := NewCart()
	cart.Add(CartItemFromMenu(menu, 2))

	assert.Equal(t, []OrderItem{{ID: 1, Name: "Dosa", Price: 50, Quantity: 2}}, cart.Snapshot())
}
