package auth

import (
	"time"

	"github.com/google/uuid"
)

// LoginRequest for email/password login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest for token refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest invalidates a refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserResponse is the login identity returned to clients
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	AccountID string    `json:"account_id,omitempty"`
	CreatedAt string    `json:"created_at"`
}

// TokensResponse carries issued tokens
type TokensResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// AuthResponse is returned from login/refresh
type AuthResponse struct {
	User   UserResponse   `json:"user"`
	Tokens TokensResponse `json:"tokens"`
}

// NewUserResponse builds a UserResponse
func NewUserResponse(id uuid.UUID, email, role string, accountID uuid.UUID, createdAt time.Time) UserResponse {
	resp := UserResponse{
		ID:        id,
		Email:     email,
		Role:      role,
		CreatedAt: createdAt.Format(time.RFC3339),
	}
	if accountID != uuid.Nil {
		resp.AccountID = accountID.String()
	}
	return resp
}
