package access

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func principal(role domain.GlobalRole, siteRoles ...domain.UserSiteRole) domain.Principal {
	return domain.Principal{UserID: "u-1", TenantID: "t-1", Role: role, SiteRoles: siteRoles, IsActive: true}
}

func siteRole(siteID string, role domain.SiteRole, start time.Time, end *time.Time) domain.UserSiteRole {
	return domain.UserSiteRole{UserID: "u-1", SiteID: siteID, Role: role, StartDate: start, EndDate: end, IsActive: true}
}

func approvePermit(tenantID, siteID string) Resource {
	return Resource{Kind: KindPermit, ID: "p-1", TenantID: tenantID, SiteID: siteID, Transition: string(domain.PermitApproved)}
}

func TestAuthorize(t *testing.T) {
	yesterday := now.Add(-24 * time.Hour)
	lastWeek := now.Add(-7 * 24 * time.Hour)

	tests := []struct {
		name   string
		p      domain.Principal
		action Action
		res    Resource
		allow  bool
		reason Reason
	}{
		{
			name:   "member reads own tenant hazard",
			p:      principal(domain.RoleEmployee),
			action: ActionRead,
			res:    Resource{Kind: KindHazard, ID: "h-1", TenantID: "t-1", SiteID: "s-1"},
			allow:  true,
		},
		{
			name:   "member creates hazard",
			p:      principal(domain.RoleSubcontractor),
			action: ActionCreate,
			res:    Resource{Kind: KindHazard, TenantID: "t-1", SiteID: "s-1"},
			allow:  true,
		},
		{
			name:   "inactive principal denied",
			p:      domain.Principal{UserID: "u-1", TenantID: "t-1", Role: domain.RoleSuperAdmin},
			action: ActionRead,
			res:    Resource{Kind: KindHazard, TenantID: "t-1"},
			reason: ReasonInactivePrincipal,
		},
		{
			name:   "cross tenant denied",
			p:      principal(domain.RoleSafetyOfficer),
			action: ActionRead,
			res:    Resource{Kind: KindHazard, ID: "h-9", TenantID: "t-2"},
			reason: ReasonCrossTenant,
		},
		{
			name:   "super admin crosses tenants",
			p:      principal(domain.RoleSuperAdmin),
			action: ActionTransition,
			res:    approvePermit("t-2", "s-9"),
			allow:  true,
		},
		{
			name:   "employee cannot approve permit",
			p:      principal(domain.RoleEmployee),
			action: ActionTransition,
			res:    approvePermit("t-1", "s-1"),
			reason: ReasonMissingSiteScope,
		},
		{
			name:   "supervisor approves permit",
			p:      principal(domain.RoleSupervisor),
			action: ActionTransition,
			res:    approvePermit("t-1", "s-1"),
			allow:  true,
		},
		{
			name:   "site manager approves permit at own site",
			p:      principal(domain.RoleEmployee, siteRole("s-1", domain.SiteRoleManager, lastWeek, nil)),
			action: ActionTransition,
			res:    approvePermit("t-1", "s-1"),
			allow:  true,
		},
		{
			name:   "site manager cannot approve permit at other site",
			p:      principal(domain.RoleEmployee, siteRole("s-2", domain.SiteRoleManager, lastWeek, nil)),
			action: ActionTransition,
			res:    approvePermit("t-1", "s-1"),
			reason: ReasonMissingSiteScope,
		},
		{
			name:   "expired site role does not count",
			p:      principal(domain.RoleEmployee, siteRole("s-1", domain.SiteRoleSafetyCoordinator, lastWeek, &yesterday)),
			action: ActionTransition,
			res:    approvePermit("t-1", "s-1"),
			reason: ReasonMissingSiteScope,
		},
		{
			name:   "foreman is not privileged",
			p:      principal(domain.RoleEmployee, siteRole("s-1", domain.SiteRoleForeman, lastWeek, nil)),
			action: ActionTransition,
			res:    Resource{Kind: KindPermit, TenantID: "t-1", SiteID: "s-1", Transition: string(domain.PermitDenied)},
			reason: ReasonMissingSiteScope,
		},
		{
			name:   "any member may request permit",
			p:      principal(domain.RoleEmployee),
			action: ActionCreate,
			res:    Resource{Kind: KindPermit, TenantID: "t-1", SiteID: "s-1"},
			allow:  true,
		},
		{
			name:   "employee cannot delete template",
			p:      principal(domain.RoleEmployee),
			action: ActionDelete,
			res:    Resource{Kind: KindTemplate, ID: "tpl-1", TenantID: "t-1"},
			reason: ReasonInsufficientRole,
		},
		{
			name:   "safety officer deletes template",
			p:      principal(domain.RoleSafetyOfficer),
			action: ActionDelete,
			res:    Resource{Kind: KindTemplate, ID: "tpl-1", TenantID: "t-1"},
			allow:  true,
		},
		{
			name:   "self role change denied for super admin",
			p:      principal(domain.RoleSuperAdmin),
			action: ActionChangeRole,
			res:    Resource{Kind: KindUser, ID: "u-1", TenantID: "t-1"},
			reason: ReasonSelfRoleChange,
		},
		{
			name:   "self role change reported before tenant mismatch",
			p:      principal(domain.RoleEmployee),
			action: ActionChangeRole,
			res:    Resource{Kind: KindUser, ID: "u-1", TenantID: "t-2"},
			reason: ReasonSelfRoleChange,
		},
		{
			name:   "supervisor cannot change roles",
			p:      principal(domain.RoleSupervisor),
			action: ActionChangeRole,
			res:    Resource{Kind: KindUser, ID: "u-2", TenantID: "t-1"},
			reason: ReasonInsufficientRole,
		},
		{
			name:   "safety officer changes another user's role",
			p:      principal(domain.RoleSafetyOfficer),
			action: ActionChangeRole,
			res:    Resource{Kind: KindUser, ID: "u-2", TenantID: "t-1"},
			allow:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Authorize(tc.p, tc.action, tc.res, now)
			assert.Equal(t, tc.allow, d.Allowed)
			assert.Equal(t, tc.reason, d.Reason)
			if tc.allow {
				assert.NoError(t, d.Err())
				return
			}
			assert.NotEmpty(t, d.Message)
			err := d.Err()
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, string(tc.reason), appErr.Details["reason"])
		})
	}
}

func TestCapabilities(t *testing.T) {
	t.Run("safety officer gets every tenant-wide capability", func(t *testing.T) {
		caps := Capabilities(principal(domain.RoleSafetyOfficer), now)
		assert.Len(t, caps, len(privilegedOperations))
		for _, c := range caps {
			assert.Empty(t, c.SiteID)
		}
	})

	t.Run("employee gets nothing", func(t *testing.T) {
		assert.Empty(t, Capabilities(principal(domain.RoleEmployee), now))
	})

	t.Run("site manager gets site-scoped capabilities", func(t *testing.T) {
		p := principal(domain.RoleEmployee, siteRole("s-1", domain.SiteRoleManager, now.Add(-time.Hour), nil))
		caps := Capabilities(p, now)
		require.NotEmpty(t, caps)
		assert.Contains(t, caps, Capability{Action: ActionTransition, Kind: KindPermit, Transition: "approved", SiteID: "s-1"})
		for _, c := range caps {
			assert.Equal(t, "s-1", c.SiteID)
			assert.NotEqual(t, ActionChangeRole, c.Action)
		}
	})
}
