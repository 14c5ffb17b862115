package review

import "errors"

const (
	pgUniqueViolation = "23505"
	pgFKViolation     = "23503"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("product already reviewed by this user")
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrUnauthorized    = errors.New("not authorized for this review")
	ErrNothingToUpdate = errors.New("no fields to update")
)
