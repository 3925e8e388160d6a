package entity

// Category is a catalog filter tag.
type Category string

const (
	CategoryBreakfast Category = "breakfast"
	CategoryLunch     Category = "lunch"
	CategorySnacks    Category = "snacks"
)

// Categories lists the known tags in display order.
func Categories() []Category {
	return []Category{CategoryBreakfast, CategoryLunch, CategorySnacks}
}

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the Category is one of the known tags.
func (c Category) IsValid() bool {
	switch c {
	case CategoryBreakfast, CategoryLunch, CategorySnacks:
		return true
	default:
		return false
	}
}

// MenuItem is an orderable catalog entry. Price is in whole currency units.
type MenuItem struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	ImageURL    string   `json:"image"`
}
