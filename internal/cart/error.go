package cart

import "errors"

var (
	// -- Validation & input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")

	// -- Resource state --
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrProductNotFound   = errors.New("product not found")
	ErrProductInactive   = errors.New("product is not available")
	ErrInsufficientStock = errors.New("insufficient stock")

	// -- Authorization --
	ErrNotCartOwner = errors.New("cart item belongs to another user")
)
