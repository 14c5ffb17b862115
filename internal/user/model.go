package user

import "time"

type User struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Phone        *string   `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    *string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
