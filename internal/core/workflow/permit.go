package workflow

import (
	"time"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// SystemActor is recorded as the updater of time-triggered transitions.
const SystemActor = "system"

// Permit is the work permit lifecycle. approved -> expired is only taken by EvaluateExpiry.
var Permit = NewMachine("permit", map[domain.PermitStatus][]domain.PermitStatus{
	domain.PermitRequested: {domain.PermitApproved, domain.PermitDenied},
	domain.PermitApproved:  {domain.PermitExpired},
}, domain.PermitDenied, domain.PermitExpired)

// CheckPermitDecision validates a user-requested permit transition. Expiry is a
// function of time and cannot be requested.
func CheckPermitDecision(from, to domain.PermitStatus) error {
	if err := Permit.Check(from, to); err != nil {
		return err
	}
	if to == domain.PermitExpired {
		return apperrors.NewInvalidTransitionError(Permit.Entity(), string(from), string(to)).
			WithDetail("requires", "endDate in the past")
	}
	return nil
}

// IsExpired reports whether p is approved with an end date strictly before now.
func IsExpired(p domain.PermitRequest, now time.Time) bool {
	return p.Status == domain.PermitApproved && p.EndDate.Before(now)
}

// EvaluateExpiry returns the permit as it must be observed at now and whether
// the stored row is stale and needs the approved -> expired write.
func EvaluateExpiry(p domain.PermitRequest, now time.Time) (domain.PermitRequest, bool) {
	if !IsExpired(p, now) {
		return p, false
	}
	p.Status = domain.PermitExpired
	p.ExpiredAt = &now
	p.Touch(SystemActor, now)
	return p, true
}

// ApplyPermitDecision records an approve or deny decision.
func ApplyPermitDecision(p *domain.PermitRequest, to domain.PermitStatus, notes, actorID string, at time.Time) {
	p.Status = to
	p.DecidedBy = &actorID
	p.DecidedAt = &at
	p.DecisionNotes = notes
	p.Touch(actorID, at)
}
