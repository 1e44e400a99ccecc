package user

import (
	"strings"
	"time"
)

type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateUserRequest represents the request to create a new user.
// The personname tag is registered by the HTTP layer's validator.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100,personname"`
	Email string `json:"email" validate:"required,email,max=255"`
}

// Normalize trims both fields and lower-cases the email so uniqueness is
// enforced case-insensitively.
func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}
