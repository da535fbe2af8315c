package domain

import "time"

// Principal is the resolved acting identity: tenant, global role and site roles.
// It is passed explicitly into every core operation; nothing reads it from ambient state.
type Principal struct {
	UserID    string         `json:"userID"`
	TenantID  string         `json:"tenantID"`
	Role      GlobalRole     `json:"role"`
	SiteRoles []UserSiteRole `json:"siteRoles"`
	IsActive  bool           `json:"isActive"`
}

// HasSiteRole reports whether the principal holds one of roles at siteID at time t.
func (p Principal) HasSiteRole(siteID string, t time.Time, roles ...SiteRole) bool {
	if siteID == "" {
		return false
	}
	for _, sr := range p.SiteRoles {
		if sr.SiteID != siteID || !sr.ActiveAt(t) {
			continue
		}
		for _, r := range roles {
			if sr.Role == r {
				return true
			}
		}
	}
	return false
}
