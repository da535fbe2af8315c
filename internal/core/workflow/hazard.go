package workflow

import (
	"time"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// Hazard is the hazard report lifecycle.
var Hazard = NewMachine("hazard", map[domain.HazardStatus][]domain.HazardStatus{
	domain.HazardOpen:       {domain.HazardAssigned, domain.HazardInProgress},
	domain.HazardAssigned:   {domain.HazardInProgress},
	domain.HazardInProgress: {domain.HazardResolved},
	domain.HazardResolved:   {domain.HazardClosed},
}, domain.HazardClosed)

// CheckHazardTransition validates a hazard transition. Leaving open requires an
// assignee: open -> assigned is the assign operation and open -> in_progress
// assigns and starts in one step.
func CheckHazardTransition(from, to domain.HazardStatus, hasAssignee bool) error {
	if err := Hazard.Check(from, to); err != nil {
		return err
	}
	if from == domain.HazardOpen && !hasAssignee {
		return apperrors.NewInvalidTransitionError(Hazard.Entity(), string(from), string(to)).
			WithDetail("requires", "assigneeId")
	}
	return nil
}

// ApplyHazardTransition sets the status and stamps the matching timestamp.
func ApplyHazardTransition(h *domain.HazardReport, to domain.HazardStatus, actorID string, at time.Time) {
	h.Status = to
	switch to {
	case domain.HazardResolved:
		h.ResolvedAt = &at
	case domain.HazardClosed:
		h.ClosedAt = &at
	}
	h.Touch(actorID, at)
}
