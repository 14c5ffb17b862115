package store

import "time"

type Store struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Address     *string   `json:"address,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateStoreInput struct {
	Name        string
	Description *string
	Phone       *string
	Address     *string
}

type UpdateStoreInput struct {
	Name        *string
	Description *string
	Phone       *string
	Address     *string
	IsActive    *bool
}
