package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_safety_app/internal/core/ports/repositories"
	"github.com/SscSPs/site_safety_app/internal/models"
	"github.com/SscSPs/site_safety_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	siteColumns = `site_id, tenant_id, name, address, status, is_active,
	created_at, created_by, last_updated_at, last_updated_by`
	siteRoleColumns = `user_site_role_id, tenant_id, user_id, site_id, role, start_date, end_date, is_active,
	created_at, created_by, last_updated_at, last_updated_by`
)

type PgxSiteRepository struct {
	BaseRepository
}

func newPgxSiteRepository(db *pgxpool.Pool) portsrepo.SiteRepositoryFacade {
	return &PgxSiteRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SiteRepositoryFacade = (*PgxSiteRepository)(nil)

func (r *PgxSiteRepository) FindSiteByID(ctx context.Context, siteID string) (*domain.Site, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+siteColumns+` FROM sites WHERE site_id = $1`, siteID)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Site])
	if err != nil {
		return nil, findError(err, "site", siteID)
	}
	site := mapping.ToDomainSite(m)
	return &site, nil
}

func (r *PgxSiteRepository) querySites(ctx context.Context, query string, args ...any) ([]domain.Site, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sites: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Site])
	if err != nil {
		return nil, fmt.Errorf("failed to scan site rows: %w", err)
	}
	return mapping.ToDomainSiteSlice(ms), nil
}

func (r *PgxSiteRepository) ListSites(ctx context.Context, tenantID string, page portsrepo.Page) ([]domain.Site, error) {
	return r.querySites(ctx, `
		SELECT `+siteColumns+`
		FROM sites
		WHERE tenant_id = $1 AND is_active
		ORDER BY name, site_id
		LIMIT $2 OFFSET $3`,
		tenantID, page.Limit, page.Offset)
}

func (r *PgxSiteRepository) ListAllSites(ctx context.Context, tenantID string) ([]domain.Site, error) {
	return r.querySites(ctx, `SELECT `+siteColumns+` FROM sites WHERE tenant_id = $1 ORDER BY site_id`, tenantID)
}

func (r *PgxSiteRepository) SaveSite(ctx context.Context, site domain.Site) error {
	m := mapping.ToModelSite(site)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO sites (site_id, tenant_id, name, address, status, is_active,
		                   created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.SiteID, m.TenantID, m.Name, m.Address, m.Status, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return insertError(err, "site", m.SiteID)
	}
	return nil
}

func (r *PgxSiteRepository) UpdateSite(ctx context.Context, site domain.Site) error {
	m := mapping.ToModelSite(site)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE sites
		SET name = $1, address = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE site_id = $6 AND is_active`,
		m.Name, m.Address, m.Status, m.LastUpdatedAt, m.LastUpdatedBy, m.SiteID,
	)
	if err != nil {
		return fmt.Errorf("failed to update site %s: %w", m.SiteID, err)
	}
	return expectOneRow(tag, "site", m.SiteID)
}

func (r *PgxSiteRepository) DeactivateSite(ctx context.Context, siteID, userID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE sites SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE site_id = $3 AND is_active`,
		now, userID, siteID,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate site %s: %w", siteID, err)
	}
	return expectOneRow(tag, "site", siteID)
}

func (r *PgxSiteRepository) SaveSiteRole(ctx context.Context, role domain.UserSiteRole) error {
	m := mapping.ToModelUserSiteRole(role)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO user_site_roles (user_site_role_id, tenant_id, user_id, site_id, role, start_date, end_date, is_active,
		                             created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.UserSiteRoleID, m.TenantID, m.UserID, m.SiteID, m.Role, m.StartDate, m.EndDate, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return insertError(err, "site role", m.UserSiteRoleID)
	}
	return nil
}

func (r *PgxSiteRepository) FindSiteRoleByID(ctx context.Context, userSiteRoleID string) (*domain.UserSiteRole, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+siteRoleColumns+` FROM user_site_roles WHERE user_site_role_id = $1`, userSiteRoleID)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.UserSiteRole])
	if err != nil {
		return nil, findError(err, "site role", userSiteRoleID)
	}
	role := mapping.ToDomainUserSiteRole(m)
	return &role, nil
}

func (r *PgxSiteRepository) querySiteRoles(ctx context.Context, where string, arg string) ([]domain.UserSiteRole, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+siteRoleColumns+`
		FROM user_site_roles
		WHERE `+where+` AND is_active
		ORDER BY start_date, user_site_role_id`, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query site roles: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.UserSiteRole])
	if err != nil {
		return nil, fmt.Errorf("failed to scan site role rows: %w", err)
	}
	return mapping.ToDomainUserSiteRoleSlice(ms), nil
}

func (r *PgxSiteRepository) ListSiteRolesBySite(ctx context.Context, siteID string) ([]domain.UserSiteRole, error) {
	return r.querySiteRoles(ctx, `site_id = $1`, siteID)
}

func (r *PgxSiteRepository) ListSiteRolesByUser(ctx context.Context, userID string) ([]domain.UserSiteRole, error) {
	return r.querySiteRoles(ctx, `user_id = $1`, userID)
}

func (r *PgxSiteRepository) ListSiteRolesByTenant(ctx context.Context, tenantID string) ([]domain.UserSiteRole, error) {
	return r.querySiteRoles(ctx, `tenant_id = $1`, tenantID)
}

func (r *PgxSiteRepository) RevokeSiteRole(ctx context.Context, userSiteRoleID, userID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE user_site_roles SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE user_site_role_id = $3 AND is_active`,
		now, userID, userSiteRoleID,
	)
	if err != nil {
		return fmt.Errorf("failed to revoke site role %s: %w", userSiteRoleID, err)
	}
	return expectOneRow(tag, "site role", userSiteRoleID)
}
