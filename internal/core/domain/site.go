package domain

import "time"

// SiteStatus is the lifecycle status of a construction site.
type SiteStatus string

const (
	SitePlanned   SiteStatus = "planned"
	SiteActive    SiteStatus = "active"
	SiteOnHold    SiteStatus = "on_hold"
	SiteCompleted SiteStatus = "completed"
)

// SiteStatuses lists every valid site status.
var SiteStatuses = []SiteStatus{SitePlanned, SiteActive, SiteOnHold, SiteCompleted}

// Site belongs to one tenant.
type Site struct {
	SiteID   string     `json:"siteID"`
	TenantID string     `json:"tenantID"`
	Name     string     `json:"name"`
	Address  string     `json:"address"`
	Status   SiteStatus `json:"status"`
	IsActive bool       `json:"isActive"`
	AuditFields
}

// SiteRole is a per-(user, site) role, orthogonal to the user's global role.
type SiteRole string

const (
	SiteRoleManager           SiteRole = "site_manager"
	SiteRoleSafetyCoordinator SiteRole = "safety_coordinator"
	SiteRoleForeman           SiteRole = "foreman"
	SiteRoleWorker            SiteRole = "worker"
	SiteRoleSubcontractor     SiteRole = "subcontractor"
	SiteRoleVisitor           SiteRole = "visitor"
)

// SiteRoles lists every valid site role.
var SiteRoles = []SiteRole{SiteRoleManager, SiteRoleSafetyCoordinator, SiteRoleForeman, SiteRoleWorker, SiteRoleSubcontractor, SiteRoleVisitor}

// IsValid reports whether r is one of the known site roles.
func (r SiteRole) IsValid() bool {
	for _, known := range SiteRoles {
		if r == known {
			return true
		}
	}
	return false
}

// UserSiteRole assigns a site role to a user for an optional date range.
type UserSiteRole struct {
	UserSiteRoleID string     `json:"userSiteRoleID"`
	TenantID       string     `json:"tenantID"`
	UserID         string     `json:"userID"`
	SiteID         string     `json:"siteID"`
	Role           SiteRole   `json:"role"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	IsActive       bool       `json:"isActive"`
	AuditFields
}

// ActiveAt reports whether the assignment is in effect at t.
func (r UserSiteRole) ActiveAt(t time.Time) bool {
	if !r.IsActive || t.Before(r.StartDate) {
		return false
	}
	return r.EndDate == nil || !t.After(*r.EndDate)
}

// Overlaps reports whether the assignment was in effect at any point of [from, to).
func (r UserSiteRole) Overlaps(from, to time.Time) bool {
	if !r.IsActive || !r.StartDate.Before(to) {
		return false
	}
	return r.EndDate == nil || !r.EndDate.Before(from)
}
