package wishlist

import "errors"

const (
	pgUniqueViolation = "23505"
	pgFKViolation     = "23503"
)

var (
	ErrAlreadyInWishlist = errors.New("product already in wishlist")
	ErrNotInWishlist     = errors.New("product not in wishlist")
	ErrProductNotFound   = errors.New("product not found")
)
