package services

import (
	"context"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user of the principal's tenant.
	GetUserByID(ctx context.Context, p domain.Principal, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of the tenant's users.
	ListUsers(ctx context.Context, p domain.Principal, params dto.ListParams) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser adds a user to the principal's tenant.
	CreateUser(ctx context.Context, p domain.Principal, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates profile fields. Users may always update themselves.
	UpdateUser(ctx context.Context, p domain.Principal, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// ChangeRole changes another user's global role.
	ChangeRole(ctx context.Context, p domain.Principal, userID string, req dto.ChangeRoleRequest) (*domain.User, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser marks a user as deleted (soft delete).
	DeleteUser(ctx context.Context, p domain.Principal, userID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
}
