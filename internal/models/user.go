package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const RoleCustomer = "cliente"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nombre"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Phone     string    `json:"telefono"`
	Address   string    `json:"direccion"`
	Role      string    `json:"rol"`
	CreatedAt time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Name     string `json:"nombre" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"telefono" validate:"required,len=10"`
	Address  string `json:"direccion" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name    string `json:"nombre" validate:"required"`
	Phone   string `json:"telefono" validate:"required,len=10"`
	Address string `json:"direccion" validate:"required"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
	User      *User  `json:"usuario"`
}

// Claims carried by the bearer token.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"rol"`
	jwt.RegisteredClaims
}
