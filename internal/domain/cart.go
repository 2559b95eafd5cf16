package domain

import "time"

// LineItem is one cart entry. Identity is (ProductID, Size, Color):
// adding the same combination again increments Quantity instead of
// appending a second entry.
type LineItem struct {
	ProductID int64     `json:"product_id" bson:"product_id"`
	Name      string    `json:"name" bson:"name"`
	UnitPrice int64     `json:"unit_price" bson:"unit_price"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	Size      string    `json:"size" bson:"size"`
	Color     string    `json:"color" bson:"color"`
	ImageURL  string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	AddedAt   time.Time `json:"added_at" bson:"added_at"`
}

// Matches reports whether the item has the given identity key.
func (i LineItem) Matches(productID int64, size, color string) bool {
	return i.ProductID == productID && i.Size == size && i.Color == color
}

type Cart struct {
	ID        string     `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string     `json:"user_id" bson:"user_id"`
	Items     []LineItem `json:"items" bson:"items"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// TotalItems is always derived from the line items. There is no stored
// counter that could drift.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

func (c *Cart) Subtotal() int64 {
	var subtotal int64
	for _, item := range c.Items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}
	return subtotal
}
