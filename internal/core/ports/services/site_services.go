package services

import (
	"context"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/dto"
)

// SiteReaderSvc defines read operations for sites
type SiteReaderSvc interface {
	GetSite(ctx context.Context, p domain.Principal, siteID string) (*domain.Site, error)
	ListSites(ctx context.Context, p domain.Principal, params dto.ListParams) ([]domain.Site, error)
}

// SiteWriterSvc defines write operations for sites
type SiteWriterSvc interface {
	CreateSite(ctx context.Context, p domain.Principal, req dto.CreateSiteRequest) (*domain.Site, error)
	UpdateSite(ctx context.Context, p domain.Principal, siteID string, req dto.UpdateSiteRequest) (*domain.Site, error)
	DeleteSite(ctx context.Context, p domain.Principal, siteID string) error
}

// SiteRoleSvc manages per-site role assignments
type SiteRoleSvc interface {
	// GrantSiteRole assigns a site role to a user of the same tenant.
	GrantSiteRole(ctx context.Context, p domain.Principal, siteID string, req dto.GrantSiteRoleRequest) (*domain.UserSiteRole, error)

	// ListSiteRoles lists the active assignments at a site.
	ListSiteRoles(ctx context.Context, p domain.Principal, siteID string) ([]domain.UserSiteRole, error)

	// RevokeSiteRole deactivates an assignment.
	RevokeSiteRole(ctx context.Context, p domain.Principal, siteID, userSiteRoleID string) error
}

// SiteSvcFacade combines all site-related service interfaces
type SiteSvcFacade interface {
	SiteReaderSvc
	SiteWriterSvc
	SiteRoleSvc
}
