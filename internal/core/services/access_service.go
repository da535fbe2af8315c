package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/access"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_safety_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
)

type accessService struct {
	BaseService
	userRepo portsrepo.UserReader
	siteRepo portsrepo.SiteRoleManager
}

// NewAccessService creates the service that resolves principals from storage.
func NewAccessService(userRepo portsrepo.UserReader, siteRepo portsrepo.SiteRoleManager, options ...ServiceOption) portssvc.AccessSvc {
	return &accessService{
		BaseService: newBaseService(options...),
		userRepo:    userRepo,
		siteRepo:    siteRepo,
	}
}

var _ portssvc.AccessSvc = (*accessService)(nil)

func (s *accessService) ResolvePrincipal(ctx context.Context, userID string) (*domain.Principal, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load principal", slog.String("user_id", userID))
	}
	if user.DeletedAt != nil {
		return nil, apperrors.NewNotFoundError("user " + userID + " not found")
	}
	roles, err := s.siteRepo.ListSiteRolesByUser(ctx, userID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load site roles", slog.String("user_id", userID))
	}
	return &domain.Principal{
		UserID:    user.UserID,
		TenantID:  user.TenantID,
		Role:      user.Role,
		SiteRoles: roles,
		IsActive:  user.IsActive,
	}, nil
}

func (s *accessService) Capabilities(ctx context.Context, p domain.Principal) []access.Capability {
	return access.Capabilities(p, s.Now())
}
