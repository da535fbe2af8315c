package mapping

import (
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/models"
)

// ToModelIncident converts a domain IncidentReport to a model Incident
func ToModelIncident(d domain.IncidentReport) models.Incident {
	involved := d.InvolvedUserIDs
	if involved == nil {
		involved = []string{}
	}
	return models.Incident{
		IncidentID:             d.IncidentID,
		TenantID:               d.TenantID,
		SiteID:                 d.SiteID,
		Title:                  d.Title,
		Description:            d.Description,
		Severity:               string(d.Severity),
		Status:                 string(d.Status),
		OccurredAt:             d.OccurredAt,
		ReportedBy:             d.ReportedBy,
		InvolvedUserIDs:        involved,
		RootCause:              NullString(d.RootCause),
		CorrectiveActions:      NullString(d.CorrectiveActions),
		PreventativeMeasures:   NullString(d.PreventativeMeasures),
		InvestigationStartedAt: d.InvestigationStartedAt,
		ResolvedAt:             d.ResolvedAt,
		ClosedAt:               d.ClosedAt,
		IsActive:               d.IsActive,
		Version:                d.Version,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainIncident converts a model Incident to a domain IncidentReport
func ToDomainIncident(m models.Incident) domain.IncidentReport {
	involved := m.InvolvedUserIDs
	if involved == nil {
		involved = []string{}
	}
	return domain.IncidentReport{
		IncidentID:             m.IncidentID,
		TenantID:               m.TenantID,
		SiteID:                 m.SiteID,
		Title:                  m.Title,
		Description:            m.Description,
		Severity:               domain.IncidentSeverity(m.Severity),
		Status:                 domain.IncidentStatus(m.Status),
		OccurredAt:             m.OccurredAt,
		ReportedBy:             m.ReportedBy,
		InvolvedUserIDs:        involved,
		RootCause:              m.RootCause.String,
		CorrectiveActions:      m.CorrectiveActions.String,
		PreventativeMeasures:   m.PreventativeMeasures.String,
		InvestigationStartedAt: m.InvestigationStartedAt,
		ResolvedAt:             m.ResolvedAt,
		ClosedAt:               m.ClosedAt,
		IsActive:               m.IsActive,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
		Versioned:              domain.Versioned{Version: m.Version},
	}
}
