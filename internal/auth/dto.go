package auth

import "github.com/personal/coffee-catalog-backend/pkg/enums"

// RegisterRequest contains the payload required to create an account. Role is
// optional and defaults to USER.
type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6"`
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=USER ADMIN"`
}

// LoginRequest carries the credential pair for authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	AccessToken string     `json:"accessToken"`
	Email       string     `json:"email"`
	Role        enums.Role `json:"role"`
}
