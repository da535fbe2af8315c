package access

import (
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// Capability is one privileged operation the principal may perform.
// SiteID is empty for tenant-wide capabilities.
type Capability struct {
	Action     Action `json:"action"`
	Kind       Kind   `json:"kind"`
	Transition string `json:"transition,omitempty"`
	SiteID     string `json:"siteID,omitempty"`
}

// privilegedOperations enumerates every operation IsPrivileged returns true for.
var privilegedOperations = []Capability{
	{Action: ActionTransition, Kind: KindPermit, Transition: string(domain.PermitApproved)},
	{Action: ActionTransition, Kind: KindPermit, Transition: string(domain.PermitDenied)},
	{Action: ActionCreate, Kind: KindTemplate},
	{Action: ActionUpdate, Kind: KindTemplate},
	{Action: ActionDelete, Kind: KindTemplate},
	{Action: ActionCreate, Kind: KindUser},
	{Action: ActionUpdate, Kind: KindUser},
	{Action: ActionChangeRole, Kind: KindUser},
	{Action: ActionDelete, Kind: KindUser},
	{Action: ActionCreate, Kind: KindSite},
	{Action: ActionUpdate, Kind: KindSite},
	{Action: ActionDelete, Kind: KindSite},
	{Action: ActionCreate, Kind: KindSiteRole},
	{Action: ActionDelete, Kind: KindSiteRole},
	{Action: ActionUpdate, Kind: KindTenant},
}

// Capabilities evaluates every privileged operation with Authorize, once
// tenant-wide and once per site the principal holds a role at.
// A UI renders controls from this list instead of re-implementing role checks.
func Capabilities(p domain.Principal, now time.Time) []Capability {
	caps := make([]Capability, 0)
	for _, op := range privilegedOperations {
		res := Resource{Kind: op.Kind, TenantID: p.TenantID, Transition: op.Transition}
		if op.Action == ActionChangeRole {
			res.ID = "*"
		}
		if Authorize(p, op.Action, res, now).Allowed {
			caps = append(caps, op)
		}
	}

	seen := make(map[string]bool)
	for _, sr := range p.SiteRoles {
		if seen[sr.SiteID] || !sr.ActiveAt(now) {
			continue
		}
		seen[sr.SiteID] = true
		for _, op := range privilegedOperations {
			res := Resource{Kind: op.Kind, TenantID: p.TenantID, SiteID: sr.SiteID, Transition: op.Transition}
			if op.Action == ActionChangeRole {
				continue
			}
			tenantWide := Authorize(p, op.Action, Resource{Kind: op.Kind, TenantID: p.TenantID, Transition: op.Transition}, now).Allowed
			if !tenantWide && Authorize(p, op.Action, res, now).Allowed {
				op.SiteID = sr.SiteID
				caps = append(caps, op)
			}
		}
	}
	return caps
}
