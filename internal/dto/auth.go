package dto

import "time"

// LoginRequest holds manager credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// RegisterRequest creates another manager account.
type RegisterRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8,max=72"`
	Department string `json:"department" binding:"omitempty,max=100"`
}

// ExchangeCodeRequest carries a Google authorization code obtained by the client.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
