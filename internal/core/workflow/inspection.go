package workflow

import (
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// Inspection is the inspection lifecycle.
var Inspection = NewMachine("inspection", map[domain.InspectionStatus][]domain.InspectionStatus{
	domain.InspectionScheduled:  {domain.InspectionInProgress, domain.InspectionCompleted, domain.InspectionCanceled},
	domain.InspectionInProgress: {domain.InspectionCompleted, domain.InspectionCanceled},
}, domain.InspectionCompleted, domain.InspectionCanceled)

// AcceptsResponses reports whether responses may still be recorded.
func AcceptsResponses(s domain.InspectionStatus) bool {
	return s == domain.InspectionScheduled || s == domain.InspectionInProgress
}

// ApplyInspectionTransition sets the status and stamps timestamps.
func ApplyInspectionTransition(i *domain.Inspection, to domain.InspectionStatus, actorID string, at time.Time) {
	i.Status = to
	switch to {
	case domain.InspectionInProgress:
		i.StartedAt = &at
	case domain.InspectionCompleted:
		i.CompletedAt = &at
	}
	i.Touch(actorID, at)
}

// FindingMachine tracks remediation of a finding. Resolved findings stay resolved.
var FindingMachine = NewMachine("inspection_finding", map[domain.FindingStatus][]domain.FindingStatus{
	domain.FindingOpen:       {domain.FindingInProgress, domain.FindingResolved},
	domain.FindingInProgress: {domain.FindingResolved},
}, domain.FindingResolved)
