package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/access"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_safety_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/SscSPs/site_safety_app/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service
func NewUserService(userRepo portsrepo.UserRepositoryFacade, options ...ServiceOption) portssvc.UserSvcFacade {
	return &userService{
		BaseService: newBaseService(options...),
		userRepo:    userRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func userResource(u domain.User) access.Resource {
	return access.Resource{Kind: access.KindUser, ID: u.UserID, TenantID: u.TenantID}
}

func (s *userService) findUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load user", slog.String("target_user_id", userID))
	}
	if user.DeletedAt != nil {
		return nil, apperrors.NewNotFoundError("user " + userID + " not found")
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, p domain.Principal, userID string) (*domain.User, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, p, access.ActionRead, userResource(*user)); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, p domain.Principal, params dto.ListParams) ([]domain.User, error) {
	if err := s.Authorize(ctx, p, access.ActionRead, access.Resource{Kind: access.KindUser, TenantID: p.TenantID}); err != nil {
		return nil, err
	}
	page := portsrepo.Page{Limit: params.Limit, Offset: params.Offset}.Normalize()
	users, err := s.userRepo.ListUsers(ctx, p.TenantID, page)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to list users", slog.String("tenant_id", p.TenantID))
	}
	return users, nil
}

func (s *userService) CreateUser(ctx context.Context, p domain.Principal, req dto.CreateUserRequest) (*domain.User, error) {
	if err := s.Authorize(ctx, p, access.ActionCreate, access.Resource{Kind: access.KindUser, TenantID: p.TenantID}); err != nil {
		return nil, err
	}
	if !req.Role.IsValid() {
		return nil, apperrors.NewValidationFailedError("unknown role " + string(req.Role))
	}
	if req.Role == domain.RoleSuperAdmin && p.Role != domain.RoleSuperAdmin {
		return nil, apperrors.NewUnauthorizedError(string(access.ReasonInsufficientRole), "only super_admin can create super_admin users")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflictError("a user with this email already exists")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, s.repoError(ctx, err, "Failed to check email uniqueness")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		TenantID:     p.TenantID,
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         req.Role,
		CompanyName:  strings.TrimSpace(req.CompanyName),
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(p.UserID, s.Now()),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, s.repoError(ctx, err, "Failed to save user")
	}

	s.LogInfo(ctx, "User created", slog.String("new_user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, p domain.Principal, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	action := access.ActionUpdate
	if user.UserID == p.UserID {
		action = access.ActionRead
	}
	if err := s.Authorize(ctx, p, action, userResource(*user)); err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationFailedError("name cannot be empty")
		}
		user.Name = name
	}
	if req.CompanyName != nil {
		user.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	user.Touch(p.UserID, s.Now())

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, s.repoError(ctx, err, "Failed to update user", slog.String("target_user_id", userID))
	}
	return user, nil
}

func (s *userService) ChangeRole(ctx context.Context, p domain.Principal, userID string, req dto.ChangeRoleRequest) (*domain.User, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, p, access.ActionChangeRole, userResource(*user)); err != nil {
		return nil, err
	}
	if !req.Role.IsValid() {
		return nil, apperrors.NewValidationFailedError("unknown role " + string(req.Role))
	}
	if (req.Role == domain.RoleSuperAdmin || user.Role == domain.RoleSuperAdmin) && p.Role != domain.RoleSuperAdmin {
		return nil, apperrors.NewUnauthorizedError(string(access.ReasonInsufficientRole), "only super_admin can grant or revoke super_admin")
	}

	now := s.Now()
	if err := s.userRepo.UpdateUserRole(ctx, userID, req.Role, p.UserID, now); err != nil {
		return nil, s.repoError(ctx, err, "Failed to change user role", slog.String("target_user_id", userID))
	}
	s.LogInfo(ctx, "User role changed",
		slog.String("target_user_id", userID),
		slog.String("from", string(user.Role)),
		slog.String("to", string(req.Role)))

	user.Role = req.Role
	user.Touch(p.UserID, now)
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, p domain.Principal, userID string) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.Authorize(ctx, p, access.ActionDelete, userResource(*user)); err != nil {
		return err
	}
	if user.UserID == p.UserID {
		return apperrors.NewValidationFailedError("users cannot delete themselves")
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, s.Now(), p.UserID); err != nil {
		return s.repoError(ctx, err, "Failed to delete user", slog.String("target_user_id", userID))
	}
	s.LogInfo(ctx, "User deleted", slog.String("target_user_id", userID))
	return nil
}
