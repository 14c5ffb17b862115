package booking

import (
	"errors"
	"fmt"
)

const pgUniqueViolation = "23505"

var (
	ErrProviderNotFound  = errors.New("service provider not found")
	ErrProviderExists    = errors.New("user already has a provider profile")
	ErrServiceNotFound   = errors.New("service not found")
	ErrServiceInactive   = errors.New("service is not bookable")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrUnauthorized      = errors.New("not authorized for this booking")
	ErrInvalidLocation   = errors.New("invalid location type")
	ErrPastBookingDate   = errors.New("booking date must not be in the past")
	ErrReferenceConflict = errors.New("booking reference already exists")
	ErrInvalidPrice      = errors.New("price must be positive")
)

// InvalidTransitionError reports a booking status change that is not
// allowed from the current status.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %s to %s", e.From, e.To)
}
