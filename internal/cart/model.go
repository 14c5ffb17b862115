package cart

import "time"

type Cart struct {
	ID        uint        `json:"id"`
	UserID    uint        `json:"user_id"`
	Items     []*CartItem `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TotalItems returns the summed quantity across all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalAmount sums quantity times the snapshotted price of each line.
func (c *Cart) TotalAmount() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += float64(item.Quantity) * item.Price
	}
	return total
}

type CartItem struct {
	ID        uint    `json:"id"`
	CartID    uint    `json:"cart_id"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	// Price is the snapshot captured when the item was added, not the
	// product's current price.
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProductName string `json:"product_name,omitempty"`
	StoreID     uint   `json:"store_id,omitempty"`
	StoreName   string `json:"store_name,omitempty"`
	StockOnHand int    `json:"stock_on_hand,omitempty"`

	// OwnerID is the cart owner's user id, populated when an item is
	// loaded for an ownership check.
	OwnerID uint `json:"-"`
}

type AddItemParams struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

type UpdateItemParams struct {
	UserID   uint
	ItemID   uint
	Quantity int
}
