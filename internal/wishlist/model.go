package wishlist

import "time"

// Item is a wishlist entry with its product summary joined in.
type Item struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	ProductID uint      `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`

	ProductName  string  `json:"product_name,omitempty"`
	ProductPrice float64 `json:"product_price,omitempty"`
	InStock      bool    `json:"in_stock"`
	StoreName    string  `json:"store_name,omitempty"`
}
