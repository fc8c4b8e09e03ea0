package models

// MenuItem represents a dish on the storefront menu.
// The catalog owns and mutates menu items; the cart only reads them.
type MenuItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"` // minor currency units (kobo)
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
	SoldOut     bool   `json:"soldOut"`
}
