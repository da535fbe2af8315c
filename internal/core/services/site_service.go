package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/access"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_safety_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/google/uuid"
)

type siteService struct {
	BaseService
	siteRepo portsrepo.SiteRepositoryFacade
	userRepo portsrepo.UserReader
}

// NewSiteService creates a new site service
func NewSiteService(siteRepo portsrepo.SiteRepositoryFacade, userRepo portsrepo.UserReader, options ...ServiceOption) portssvc.SiteSvcFacade {
	return &siteService{
		BaseService: newBaseService(options...),
		siteRepo:    siteRepo,
		userRepo:    userRepo,
	}
}

var _ portssvc.SiteSvcFacade = (*siteService)(nil)

func siteResource(site domain.Site, kind access.Kind) access.Resource {
	return access.Resource{Kind: kind, ID: site.SiteID, TenantID: site.TenantID, SiteID: site.SiteID}
}

func (s *siteService) loadSite(ctx context.Context, p domain.Principal, siteID string, action access.Action, kind access.Kind) (*domain.Site, error) {
	site, err := s.siteRepo.FindSiteByID(ctx, siteID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load site", slog.String("site_id", siteID))
	}
	if err := s.Authorize(ctx, p, action, siteResource(*site, kind)); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *siteService) GetSite(ctx context.Context, p domain.Principal, siteID string) (*domain.Site, error) {
	return s.loadSite(ctx, p, siteID, access.ActionRead, access.KindSite)
}

func (s *siteService) ListSites(ctx context.Context, p domain.Principal, params dto.ListParams) ([]domain.Site, error) {
	if err := s.Authorize(ctx, p, access.ActionRead, access.Resource{Kind: access.KindSite, TenantID: p.TenantID}); err != nil {
		return nil, err
	}
	page := portsrepo.Page{Limit: params.Limit, Offset: params.Offset}.Normalize()
	sites, err := s.siteRepo.ListSites(ctx, p.TenantID, page)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to list sites", slog.String("tenant_id", p.TenantID))
	}
	return sites, nil
}

func (s *siteService) CreateSite(ctx context.Context, p domain.Principal, req dto.CreateSiteRequest) (*domain.Site, error) {
	if err := s.Authorize(ctx, p, access.ActionCreate, access.Resource{Kind: access.KindSite, TenantID: p.TenantID}); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = domain.SitePlanned
	}
	site := domain.Site{
		SiteID:      uuid.NewString(),
		TenantID:    p.TenantID,
		Name:        strings.TrimSpace(req.Name),
		Address:     req.Address,
		Status:      status,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(p.UserID, s.Now()),
	}
	if err := s.siteRepo.SaveSite(ctx, site); err != nil {
		return nil, s.repoError(ctx, err, "Failed to save site")
	}
	s.LogInfo(ctx, "Site created", slog.String("site_id", site.SiteID))
	return &site, nil
}

func (s *siteService) UpdateSite(ctx context.Context, p domain.Principal, siteID string, req dto.UpdateSiteRequest) (*domain.Site, error) {
	site, err := s.loadSite(ctx, p, siteID, access.ActionUpdate, access.KindSite)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperrors.NewValidationFailedError("name cannot be empty")
		}
		site.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		site.Address = *req.Address
	}
	if req.Status != nil {
		site.Status = *req.Status
	}
	site.Touch(p.UserID, s.Now())
	if err := s.siteRepo.UpdateSite(ctx, *site); err != nil {
		return nil, s.repoError(ctx, err, "Failed to update site", slog.String("site_id", siteID))
	}
	return site, nil
}

func (s *siteService) DeleteSite(ctx context.Context, p domain.Principal, siteID string) error {
	if _, err := s.loadSite(ctx, p, siteID, access.ActionDelete, access.KindSite); err != nil {
		return err
	}
	if err := s.siteRepo.DeactivateSite(ctx, siteID, p.UserID, s.Now()); err != nil {
		return s.repoError(ctx, err, "Failed to deactivate site", slog.String("site_id", siteID))
	}
	return nil
}

func (s *siteService) GrantSiteRole(ctx context.Context, p domain.Principal, siteID string, req dto.GrantSiteRoleRequest) (*domain.UserSiteRole, error) {
	site, err := s.loadSite(ctx, p, siteID, access.ActionCreate, access.KindSiteRole)
	if err != nil {
		return nil, err
	}
	if !req.Role.IsValid() {
		return nil, apperrors.NewValidationFailedError("unknown site role " + string(req.Role))
	}
	user, err := s.userRepo.FindUserByID(ctx, req.UserID)
	if err != nil {
		return nil, s.repoError(ctx, notFoundAsValidation(err, "user not found"), "Failed to load user for site role", slog.String("target_user_id", req.UserID))
	}
	if user.TenantID != site.TenantID || user.DeletedAt != nil {
		return nil, apperrors.NewValidationFailedError("user not found")
	}

	now := s.Now()
	start := now
	if req.StartDate != nil {
		start = req.StartDate.UTC()
	}
	if req.EndDate != nil && req.EndDate.Before(start) {
		return nil, apperrors.NewValidationFailedError("endDate must not be before startDate")
	}
	role := domain.UserSiteRole{
		UserSiteRoleID: uuid.NewString(),
		TenantID:       site.TenantID,
		UserID:         user.UserID,
		SiteID:         site.SiteID,
		Role:           req.Role,
		StartDate:      start,
		EndDate:        req.EndDate,
		IsActive:       true,
		AuditFields:    domain.NewAuditFields(p.UserID, now),
	}
	if err := s.siteRepo.SaveSiteRole(ctx, role); err != nil {
		return nil, s.repoError(ctx, err, "Failed to save site role", slog.String("site_id", siteID))
	}
	s.LogInfo(ctx, "Site role granted",
		slog.String("site_id", siteID),
		slog.String("target_user_id", user.UserID),
		slog.String("site_role", string(role.Role)))
	return &role, nil
}

func (s *siteService) ListSiteRoles(ctx context.Context, p domain.Principal, siteID string) ([]domain.UserSiteRole, error) {
	if _, err := s.loadSite(ctx, p, siteID, access.ActionRead, access.KindSiteRole); err != nil {
		return nil, err
	}
	roles, err := s.siteRepo.ListSiteRolesBySite(ctx, siteID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to list site roles", slog.String("site_id", siteID))
	}
	return roles, nil
}

func (s *siteService) RevokeSiteRole(ctx context.Context, p domain.Principal, siteID, userSiteRoleID string) error {
	if _, err := s.loadSite(ctx, p, siteID, access.ActionDelete, access.KindSiteRole); err != nil {
		return err
	}
	role, err := s.siteRepo.FindSiteRoleByID(ctx, userSiteRoleID)
	if err != nil {
		return s.repoError(ctx, err, "Failed to load site role", slog.String("user_site_role_id", userSiteRoleID))
	}
	if role.SiteID != siteID {
		return apperrors.NewNotFoundError("site role " + userSiteRoleID + " not found at site " + siteID)
	}
	if err := s.siteRepo.RevokeSiteRole(ctx, userSiteRoleID, p.UserID, s.Now()); err != nil {
		return s.repoError(ctx, err, "Failed to revoke site role", slog.String("user_site_role_id", userSiteRoleID))
	}
	return nil
}
