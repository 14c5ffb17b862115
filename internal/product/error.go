package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUnauthorized    = errors.New("caller does not own this product's store")
	ErrNothingToUpdate = errors.New("no fields to update")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrInvalidStock    = errors.New("stock quantity must not be negative")
)
