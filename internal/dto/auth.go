package dto

import "time"

// RegisterRequest creates a tenant and its first safety officer.
type RegisterRequest struct {
	TenantName string `json:"tenantName" binding:"required,max=200"`
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name" binding:"required,max=200"`
	Password   string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest carries email and password credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the access token.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Tenant TenantResponse `json:"tenant"`
	User   UserResponse   `json:"user"`
	LoginResponse
}
