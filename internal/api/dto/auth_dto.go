package dto

import "time"

// TokenRequest asks for a token for an explicit identity.
type TokenRequest struct {
	UserID *int64 `json:"user_id" validate:"required"`
	Role   string `json:"role" validate:"required,max=64"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MeResponse echoes the verified identity of the caller.
type MeResponse struct {
	UserID    int64     `json:"user_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
