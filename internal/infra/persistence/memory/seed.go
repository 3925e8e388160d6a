package memory

import "campuseats/internal/domain/entity"

// DefaultMenu returns the canteen catalog loaded at boot.
func DefaultMenu() []entity.MenuItem {
	return []entity.MenuItem{
		{
			ID:          1,
			Name:        "Poori",
			Price:       40,
			Description: "Golden-fried, puffy whole wheat bread served with spicy potato masala. A hearty breakfast staple across India.",
			Category:    entity.CategoryBreakfast,
			ImageURL:    "/api/static/poori.png",
		},
		{
			ID:          2,
			Name:        "Dosa",
			Price:       50,
			Description: "Crispy, golden-brown fermented rice and lentil crepe served with coconut chutney and tangy sambar. South Indian favorite.",
			Category:    entity.CategoryBreakfast,
			ImageURL:    "/api/static/dosa.png",
		},
		{
			ID:          3,
			Name:        "Idli",
			Price:       30,
			Description: "Soft, fluffy steamed rice cakes made from fermented rice and lentil batter. Served with sambar and chutney.",
			Category:    entity.CategoryBreakfast,
			ImageURL:    "/api/static/idili.png",
		},
		{
			ID:          4,
			Name:        "Vada",
			Price:       20,
			Description: "Crispy, donut-shaped savory fritters made from urad dal, flavored with curry leaves, ginger, and chilies. Perfect with chutney.",
			Category:    entity.CategoryBreakfast,
			ImageURL:    "/api/static/vada.png",
		},
		{
			ID:          5,
			Name:        "Paneer Palak",
			Price:       120,
			Description: "Fresh cottage cheese cubes in a creamy, pureed spinach gravy seasoned with aromatic spices. Rich in iron and protein.",
			Category:    entity.CategoryLunch,
			ImageURL:    "/api/static/paneer palak.png",
		},
		{
			ID:          6,
			Name:        "Chapati",
			Price:       40,
			Description: "Soft, whole wheat flatbread roasted on a tawa. The perfect accompaniment for curries and dals.",
			Category:    entity.CategoryLunch,
			ImageURL:    "/api/static/chapathi.png",
		},
		{
			ID:          7,
			Name:        "South Meals",
			Price:       150,
			Description: "A complete balanced meal with rice, sambar, rasam, vegetable curries, curd, pickle, and papadam served on a traditional banana leaf.",
			Category:    entity.CategoryLunch,
			ImageURL:    "/api/static/south meals.png",
		},
		{
			ID:          8,
			Name:        "North Meals",
			Price:       170,
			Description: "Wholesome thali with rotis, dal, vegetable curry, rice, pickle, and a sweet dish. A perfect representation of North Indian cuisine.",
			Category:    entity.CategoryLunch,
			ImageURL:    "/api/static/north meals.png",
		},
		{
			ID:          9,
			Name:        "Noodles",
			Price:       80,
			Description: "Stir-fried noodles with mixed vegetables in a spicy Indo-Chinese sauce, topped with spring onions.",
			Category:    entity.CategoryLunch,
			ImageURL:    "/api/static/noodles.png",
		},
		{
			ID:          10,
			Name:        "Gobi Manchurian",
			Price:       90,
			Description: "Crispy cauliflower florets tossed in a tangy, spicy Manchurian sauce. A popular Indo-Chinese delicacy.",
			Category:    entity.CategoryLunch,
			ImageURL:    "/api/static/gobi manchi.jpg",
		},
		{
			ID:          11,
			Name:        "Samosa",
			Price:       15,
			Description: "Triangle-shaped pastries filled with spiced potatoes, peas, and aromatic spices. Served with mint and tamarind chutneys.",
			Category:    entity.CategorySnacks,
			ImageURL:    "/api/static/samosa.jpg",
		},
		{
			ID:          12,
			Name:        "Rasgulla",
			Price:       20,
			Description: "Soft, spongy cheese balls soaked in light sugar syrup. A melt-in-mouth Bengali sweet treat.",
			Category:    entity.CategorySnacks,
			ImageURL:    "/api/static/rasagulla.jpg",
		},
		{
			ID:          13,
			Name:        "Puffs",
			Price:       25,
			Description: "Flaky, layered pastry filled with spicy vegetable or paneer stuffing. Perfect tea-time snack.",
			Category:    entity.CategorySnacks,
			ImageURL:    "/api/static/puff.jpg",
		},
		{
			ID:          14,
			Name:        "Cornflakes",
			Price:       30,
			Description: "Crunchy cornflakes served with cold milk and topped with fresh seasonal fruits and honey.",
			Category:    entity.CategorySnacks,
			ImageURL:    "/api/static/cornflakes.webp",
		},
	}
}
