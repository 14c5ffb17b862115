package order

import (
	"errors"
	"fmt"
)

const pgUniqueViolation = "23505"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrUnauthorized       = errors.New("not authorized for this order")
	ErrInvalidStatus      = errors.New("unknown order status")
	ErrNumberConflict     = errors.New("order number already exists")
	ErrInvalidPayMethod   = errors.New("invalid payment method")
	ErrMissingAddress     = errors.New("shipping address is incomplete")
)

// StockShortageError reports the first cart line whose product cannot
// cover the requested quantity. The whole checkout is aborted.
type StockShortageError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Available   int
}

func (e *StockShortageError) Error() string {
	return fmt.Sprintf(
		"insufficient stock for %q (product %d): requested %d, available %d",
		e.ProductName, e.ProductID, e.Requested, e.Available,
	)
}

// InvalidTransitionError reports a status change that is not allowed
// from the order's current status.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}
