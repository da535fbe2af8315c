package workflow

import (
	"strings"
	"time"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// Incident is the incident investigation lifecycle.
var Incident = NewMachine("incident", map[domain.IncidentStatus][]domain.IncidentStatus{
	domain.IncidentReported:      {domain.IncidentInvestigating},
	domain.IncidentInvestigating: {domain.IncidentResolved},
	domain.IncidentResolved:      {domain.IncidentClosed},
}, domain.IncidentClosed)

// CheckIncidentTransition validates an incident transition. Resolving requires
// all three investigation fields; missing ones are reported by name.
func CheckIncidentTransition(from, to domain.IncidentStatus, res domain.IncidentResolution) error {
	if err := Incident.Check(from, to); err != nil {
		return err
	}
	if to != domain.IncidentResolved {
		return nil
	}
	var missing []string
	if strings.TrimSpace(res.RootCause) == "" {
		missing = append(missing, "rootCause")
	}
	if strings.TrimSpace(res.CorrectiveActions) == "" {
		missing = append(missing, "correctiveActions")
	}
	if strings.TrimSpace(res.PreventativeMeasures) == "" {
		missing = append(missing, "preventativeMeasures")
	}
	if len(missing) > 0 {
		return apperrors.NewMissingFieldsError(missing)
	}
	return nil
}

// ApplyIncidentTransition sets the status, stamps timestamps and copies the
// investigation outcome on resolve.
func ApplyIncidentTransition(i *domain.IncidentReport, to domain.IncidentStatus, res domain.IncidentResolution, actorID string, at time.Time) {
	i.Status = to
	switch to {
	case domain.IncidentInvestigating:
		i.InvestigationStartedAt = &at
	case domain.IncidentResolved:
		i.RootCause = strings.TrimSpace(res.RootCause)
		i.CorrectiveActions = strings.TrimSpace(res.CorrectiveActions)
		i.PreventativeMeasures = strings.TrimSpace(res.PreventativeMeasures)
		i.ResolvedAt = &at
	case domain.IncidentClosed:
		i.ClosedAt = &at
	}
	i.Touch(actorID, at)
}
