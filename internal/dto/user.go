package dto

import (
	"github.com/unlockhq/unlock-backend/internal/core/domain"
)

// RegisterUserRequest registers a plain user account.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// RegisterPublisherRequest registers a publisher account together with its
// organization profile.
type RegisterPublisherRequest struct {
	RegisterUserRequest
	CreatePublisherRequest
}

// LoginRequest authenticates by email and password.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ListUsersParams are the query parameters of the admin user list.
type ListUsersParams struct {
	Query string `form:"q"`
	Page  int    `form:"page,default=1"`
	Limit int    `form:"limit,default=10"`
}

// UserResponse is the public shape of a user account.
type UserResponse struct {
	UserID          string          `json:"userID"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Role            domain.UserRole `json:"role"`
	Blocked         bool            `json:"blocked"`
	IsEmailVerified bool            `json:"isEmailVerified"`
}

// ToUserResponse converts a domain.User to its public shape.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:          u.UserID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		Blocked:         u.Blocked,
		IsEmailVerified: u.IsEmailVerified,
	}
}
