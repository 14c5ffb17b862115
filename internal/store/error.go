package store

import "errors"

var (
	ErrStoreNotFound   = errors.New("store not found")
	ErrStoreExists     = errors.New("user already owns a store")
	ErrUnauthorized    = errors.New("caller does not own this store")
	ErrNothingToUpdate = errors.New("no fields to update")
)
