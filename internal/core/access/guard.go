// Package access holds the tenant and role guard. Authorize is a pure decision
// function: it never reads ambient state and never has side effects, so the
// HTTP layer and the capabilities endpoint evaluate exactly the same rules.
package access

import (
	"fmt"
	"time"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// Action is the kind of operation a principal attempts.
type Action string

const (
	ActionRead       Action = "read"
	ActionCreate     Action = "create"
	ActionUpdate     Action = "update"
	ActionDelete     Action = "delete"
	ActionTransition Action = "transition"
	ActionChangeRole Action = "change_role"
)

// Kind names the type of a guarded resource.
type Kind string

const (
	KindTenant     Kind = "tenant"
	KindUser       Kind = "user"
	KindSite       Kind = "site"
	KindSiteRole   Kind = "site_role"
	KindHazard     Kind = "hazard"
	KindIncident   Kind = "incident"
	KindPermit     Kind = "permit"
	KindTemplate   Kind = "inspection_template"
	KindInspection Kind = "inspection"
	KindFinding    Kind = "inspection_finding"
	KindTraining   Kind = "training"
	KindScore      Kind = "safety_score"
)

// Resource describes the target of an action. Transition holds the requested
// target status for ActionTransition.
type Resource struct {
	Kind       Kind
	ID         string
	TenantID   string
	SiteID     string
	Transition string
}

// Reason is the machine-readable code attached to every denial.
type Reason string

const (
	ReasonInactivePrincipal Reason = "inactive_principal"
	ReasonCrossTenant       Reason = "cross_tenant"
	ReasonInsufficientRole  Reason = "insufficient_role"
	ReasonSelfRoleChange    Reason = "self_role_change"
	ReasonMissingSiteScope  Reason = "missing_site_scope"
)

// Decision is the result of Authorize.
type Decision struct {
	Allowed bool
	Reason  Reason
	Message string
}

// Err converts a denial into an apperrors Unauthorized error; nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return apperrors.NewUnauthorizedError(string(d.Reason), d.Message)
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason Reason, format string, args ...any) Decision {
	return Decision{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// Global roles allowed to perform privileged operations anywhere in their tenant.
var privilegedGlobalRoles = []domain.GlobalRole{domain.RoleSuperAdmin, domain.RoleSafetyOfficer, domain.RoleSupervisor}

// Site roles allowed to perform privileged operations at their own site.
var privilegedSiteRoles = []domain.SiteRole{domain.SiteRoleManager, domain.SiteRoleSafetyCoordinator}

// Authorize decides whether p may perform action on res at time now.
// Rules are evaluated in order and the first match wins.
func Authorize(p domain.Principal, action Action, res Resource, now time.Time) Decision {
	if !p.IsActive {
		return deny(ReasonInactivePrincipal, "user %s is inactive", p.UserID)
	}

	if action == ActionChangeRole && res.Kind == KindUser && res.ID == p.UserID {
		return deny(ReasonSelfRoleChange, "users cannot change their own role")
	}

	if p.TenantID != res.TenantID && p.Role != domain.RoleSuperAdmin {
		return deny(ReasonCrossTenant, "%s %s belongs to another tenant", res.Kind, res.ID)
	}

	if action == ActionChangeRole {
		if p.Role != domain.RoleSuperAdmin && p.Role != domain.RoleSafetyOfficer {
			return deny(ReasonInsufficientRole, "changing roles requires super_admin or safety_officer")
		}
		return allow()
	}

	if !IsPrivileged(action, res) {
		return allow()
	}

	if hasGlobalRole(p.Role, privilegedGlobalRoles...) {
		return allow()
	}
	if p.HasSiteRole(res.SiteID, now, privilegedSiteRoles...) {
		return allow()
	}
	if res.SiteID == "" {
		return deny(ReasonInsufficientRole, "%s %s on %s requires safety_officer or supervisor", action, transitionSuffix(res), res.Kind)
	}
	return deny(ReasonMissingSiteScope, "%s %s on %s requires site_manager or safety_coordinator at site %s", action, transitionSuffix(res), res.Kind, res.SiteID)
}

// IsPrivileged reports whether action on res needs an elevated role.
func IsPrivileged(action Action, res Resource) bool {
	switch res.Kind {
	case KindPermit:
		return action == ActionTransition &&
			(res.Transition == string(domain.PermitApproved) || res.Transition == string(domain.PermitDenied))
	case KindTemplate:
		return action == ActionCreate || action == ActionUpdate || action == ActionDelete
	case KindUser:
		// Self profile updates are authorized as reads by the user service.
		return action == ActionCreate || action == ActionUpdate || action == ActionChangeRole || action == ActionDelete
	case KindSite:
		return action == ActionCreate || action == ActionUpdate || action == ActionDelete
	case KindSiteRole:
		return action == ActionCreate || action == ActionDelete
	case KindTenant:
		return action == ActionUpdate
	}
	return false
}

func hasGlobalRole(role domain.GlobalRole, roles ...domain.GlobalRole) bool {
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}

func transitionSuffix(res Resource) string {
	if res.Transition == "" {
		return ""
	}
	return "to " + res.Transition
}
