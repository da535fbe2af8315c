package mapping

import (
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/models"
)

// ToModelSite converts a domain Site to a model Site
func ToModelSite(d domain.Site) models.Site {
	return models.Site{
		SiteID:      d.SiteID,
		TenantID:    d.TenantID,
		Name:        d.Name,
		Address:     NullString(d.Address),
		Status:      string(d.Status),
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSite converts a model Site to a domain Site
func ToDomainSite(m models.Site) domain.Site {
	return domain.Site{
		SiteID:      m.SiteID,
		TenantID:    m.TenantID,
		Name:        m.Name,
		Address:     m.Address.String,
		Status:      domain.SiteStatus(m.Status),
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSiteSlice converts a slice of model Sites to a slice of domain Sites
func ToDomainSiteSlice(ms []models.Site) []domain.Site {
	ds := make([]domain.Site, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSite(m)
	}
	return ds
}

// ToModelUserSiteRole converts a domain UserSiteRole to a model UserSiteRole
func ToModelUserSiteRole(d domain.UserSiteRole) models.UserSiteRole {
	return models.UserSiteRole{
		UserSiteRoleID: d.UserSiteRoleID,
		TenantID:       d.TenantID,
		UserID:         d.UserID,
		SiteID:         d.SiteID,
		Role:           string(d.Role),
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUserSiteRole converts a model UserSiteRole to a domain UserSiteRole
func ToDomainUserSiteRole(m models.UserSiteRole) domain.UserSiteRole {
	return domain.UserSiteRole{
		UserSiteRoleID: m.UserSiteRoleID,
		TenantID:       m.TenantID,
		UserID:         m.UserID,
		SiteID:         m.SiteID,
		Role:           domain.SiteRole(m.Role),
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUserSiteRoleSlice converts a slice of model UserSiteRoles to domain UserSiteRoles
func ToDomainUserSiteRoleSlice(ms []models.UserSiteRole) []domain.UserSiteRole {
	ds := make([]domain.UserSiteRole, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUserSiteRole(m)
	}
	return ds
}
