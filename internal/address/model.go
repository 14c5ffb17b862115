package address

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	ID     uuid.UUID `json:"id"`
	UserID uint      `json:"user_id"`

	Label string `json:"label"`
	Phone string `json:"phone"`

	Street     string  `json:"street"`
	Unit       *string `json:"unit,omitempty"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country"`

	IsDefault bool `json:"is_default"`
	IsActive  bool `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateAddressInput struct {
	Label        string
	Phone        string
	Street       string
	Unit         *string
	City         string
	State        string
	PostalCode   string
	Country      string
	SetAsDefault bool
}

type UpdateAddressInput struct {
	Label        *string
	Phone        *string
	Street       *string
	Unit         *string
	City         *string
	State        *string
	PostalCode   *string
	Country      *string
	SetAsDefault bool
}
