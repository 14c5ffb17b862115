package payment

import "errors"

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrAlreadySettled  = errors.New("payment already settled")
	ErrUnauthorized    = errors.New("not authorized for this payment")
)
