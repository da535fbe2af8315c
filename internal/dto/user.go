package dto

import (
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// CreateUserRequest adds a user to the caller's tenant.
type CreateUserRequest struct {
	Email       string            `json:"email" binding:"required,email"`
	Name        string            `json:"name" binding:"required,max=200"`
	Password    string            `json:"password" binding:"required,min=8,max=72"`
	Role        domain.GlobalRole `json:"role" binding:"required,global_role"`
	CompanyName string            `json:"companyName" binding:"max=200"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	CompanyName *string `json:"companyName" binding:"omitempty,max=200"`
}

// ChangeRoleRequest changes a user's global role.
type ChangeRoleRequest struct {
	Role domain.GlobalRole `json:"role" binding:"required,global_role"`
}

// ListParams defines offset pagination query parameters.
type ListParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// UserResponse defines the data returned for a user. The password hash never leaves the service.
type UserResponse struct {
	UserID        string            `json:"userID"`
	TenantID      string            `json:"tenantID"`
	Email         string            `json:"email"`
	Name          string            `json:"name"`
	Role          domain.GlobalRole `json:"role"`
	CompanyName   string            `json:"companyName,omitempty"`
	IsActive      bool              `json:"isActive"`
	CreatedAt     time.Time         `json:"createdAt"`
	LastUpdatedAt time.Time         `json:"lastUpdatedAt"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		TenantID:      u.TenantID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		CompanyName:   u.CompanyName,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
		LastUpdatedAt: u.LastUpdatedAt,
	}
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: userResponses}
}
