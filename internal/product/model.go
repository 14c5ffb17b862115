package product

import "time"

type Product struct {
	ID            uint      `json:"id"`
	StoreID       uint      `json:"store_id"`
	CategoryID    uint      `json:"category_id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	IsActive      bool      `json:"is_active"`
	StoreName     string    `json:"store_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p *Product) IsInStock() bool {
	return p.StockQuantity > 0
}

type CreateProductInput struct {
	CategoryID    uint
	Name          string
	Description   *string
	Price         float64
	StockQuantity int
}

type UpdateProductInput struct {
	CategoryID    *uint
	Name          *string
	Description   *string
	Price         *float64
	StockQuantity *int
	IsActive      *bool
}

type ListFilter struct {
	CategoryID *uint
	StoreID    *uint
	Search     *string
	MinPrice   *float64
	MaxPrice   *float64
	InStock    *bool
}
