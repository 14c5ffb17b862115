package order

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

// transitions lists the status values reachable from each status.
// Cancellation is only reachable while the store has not started
// fulfilment, because cancelling restores stock.
var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {StatusRefunded},
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Cancellable reports whether a customer may still cancel the order.
func Cancellable(s Status) bool {
	return s == StatusPending || s == StatusConfirmed
}

// Address is the snapshot stored on an order. It is serialized as JSON
// so later edits to the user's saved addresses do not rewrite history.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type Order struct {
	ID              uint         `json:"id"`
	OrderNumber     string       `json:"order_number"`
	UserID          uint         `json:"user_id"`
	StoreID         uint         `json:"store_id"`
	StoreName       string       `json:"store_name,omitempty"`
	Status          Status       `json:"status"`
	TotalAmount     float64      `json:"total_amount"`
	ShippingAddress Address      `json:"shipping_address"`
	BillingAddress  Address      `json:"billing_address"`
	Notes           *string      `json:"notes,omitempty"`
	OrderDate       time.Time    `json:"order_date"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	Items           []*OrderItem `json:"items,omitempty"`
	Delivery        *Delivery    `json:"delivery,omitempty"`
}

type OrderItem struct {
	ID          uint    `json:"id"`
	OrderID     uint    `json:"order_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	// Price is the cart-time snapshot, not the product's current price.
	Price float64 `json:"price"`
}

func (i *OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.Price
}

type Delivery struct {
	ID                    uint      `json:"id"`
	OrderID               uint      `json:"order_id"`
	Status                string    `json:"status"`
	Method                string    `json:"method"`
	EstimatedDeliveryDate time.Time `json:"estimated_delivery_date"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

const (
	DeliveryStatusInTransit = "in_transit"
	DeliveryMethodStandard  = "standard"
)

// CheckoutParams carries everything the splitter needs to turn a cart
// into orders.
type CheckoutParams struct {
	UserID          uint
	ShippingAddress Address
	BillingAddress  *Address
	PaymentMethod   string
	Notes           *string
}

type ListFilter struct {
	Status   *Status
	DateFrom *time.Time
	DateTo   *time.Time
}

// StoreStatistics aggregates order counts and revenue for one store.
// Cancelled and refunded orders are excluded from revenue.
type StoreStatistics struct {
	TotalOrders     int     `json:"total_orders"`
	PendingOrders   int     `json:"pending_orders"`
	ShippedOrders   int     `json:"shipped_orders"`
	DeliveredOrders int     `json:"delivered_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
}
