package models

import "vivaha-be/internal/entities"

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string         `json:"token"` // JWT token
	User  *entities.User `json:"user"`
}
