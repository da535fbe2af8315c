package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// SiteReader defines read operations for site data
type SiteReader interface {
	// FindSiteByID retrieves a specific site by its ID.
	FindSiteByID(ctx context.Context, siteID string) (*domain.Site, error)

	// ListSites retrieves the active sites of a tenant.
	ListSites(ctx context.Context, tenantID string, page Page) ([]domain.Site, error)

	// ListAllSites retrieves every site of a tenant, active or not.
	ListAllSites(ctx context.Context, tenantID string) ([]domain.Site, error)
}

// SiteWriter defines write operations for site data
type SiteWriter interface {
	// SaveSite persists a new site.
	SaveSite(ctx context.Context, site domain.Site) error

	// UpdateSite updates name, address and status.
	UpdateSite(ctx context.Context, site domain.Site) error

	// DeactivateSite soft-deletes a site.
	DeactivateSite(ctx context.Context, siteID, userID string, now time.Time) error
}

// SiteRoleManager defines operations on per-site role assignments
type SiteRoleManager interface {
	// SaveSiteRole persists a new site role assignment.
	SaveSiteRole(ctx context.Context, role domain.UserSiteRole) error

	// FindSiteRoleByID retrieves one site role assignment.
	FindSiteRoleByID(ctx context.Context, userSiteRoleID string) (*domain.UserSiteRole, error)

	// ListSiteRolesBySite retrieves the active assignments at a site.
	ListSiteRolesBySite(ctx context.Context, siteID string) ([]domain.UserSiteRole, error)

	// ListSiteRolesByUser retrieves the active assignments of a user.
	ListSiteRolesByUser(ctx context.Context, userID string) ([]domain.UserSiteRole, error)

	// ListSiteRolesByTenant retrieves every active assignment of a tenant.
	ListSiteRolesByTenant(ctx context.Context, tenantID string) ([]domain.UserSiteRole, error)

	// RevokeSiteRole deactivates an assignment.
	RevokeSiteRole(ctx context.Context, userSiteRoleID, userID string, now time.Time) error
}

// SiteRepositoryFacade combines all site-related repository interfaces
type SiteRepositoryFacade interface {
	SiteReader
	SiteWriter
	SiteRoleManager
}
