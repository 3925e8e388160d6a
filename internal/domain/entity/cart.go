package entity

// CartItem is a selected catalog item held by the client before checkout.
type CartItem struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Quantity    int      `json:"quantity"`
	ImageURL    string   `json:"image,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category,omitempty"`
}

// CartItemFromMenu builds a cart line for a catalog item.
func CartItemFromMenu(item *MenuItem, quantity int) CartItem {
	return CartItem{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price,
		Quantity:    quantity,
		ImageURL:    item.ImageURL,
		Description: item.Description,
		Category:    item.Category,
	}
}

// Cart keeps insertion order and merges lines by item id.
// A line never holds a quantity below 1. Cart is not safe for concurrent use.
type Cart struct {
	items []CartItem
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add appends the item, or sums quantities if the id is already present.
// Non-positive quantities are ignored.
func (c *Cart) Add(item CartItem) {
	if item.Quantity <= 0 {
		return
	}

	if i := c.indexOf(item.ID); i >= 0 {
		c.items[i].Quantity += item.Quantity

		return
	}
	c.items = append(c.items, item)
}

// UpdateQuantity sets the quantity of a line; q <= 0 removes it.
func (c *Cart) UpdateQuantity(id int64, quantity int) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}

	if quantity <= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)

		return
	}
	c.items[i].Quantity = quantity
}

// Remove drops a line.
func (c *Cart) Remove(id int64) {
	c.UpdateQuantity(id, 0)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)

	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Count returns the total quantity across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}

	return n
}

// Total returns sum(price × quantity).
func (c *Cart) Total() int64 {
	return SumItems(c.Snapshot())
}

// Snapshot converts the cart into order lines.
func (c *Cart) Snapshot() []OrderItem {
	out := make([]OrderItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, OrderItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	return out
}

func (c *Cart) indexOf(id int64) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}

	return -1
}
