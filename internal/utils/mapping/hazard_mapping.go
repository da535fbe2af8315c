package mapping

import (
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/models"
)

// ToModelHazard converts a domain HazardReport to a model Hazard
func ToModelHazard(d domain.HazardReport) models.Hazard {
	return models.Hazard{
		HazardID:    d.HazardID,
		TenantID:    d.TenantID,
		SiteID:      d.SiteID,
		Title:       d.Title,
		Description: d.Description,
		Location:    d.Location,
		Severity:    string(d.Severity),
		Status:      string(d.Status),
		ReportedBy:  d.ReportedBy,
		ResolvedAt:  d.ResolvedAt,
		ClosedAt:    d.ClosedAt,
		IsActive:    d.IsActive,
		Version:     d.Version,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainHazard converts a model Hazard to a domain HazardReport
func ToDomainHazard(m models.Hazard) domain.HazardReport {
	return domain.HazardReport{
		HazardID:    m.HazardID,
		TenantID:    m.TenantID,
		SiteID:      m.SiteID,
		Title:       m.Title,
		Description: m.Description,
		Location:    m.Location,
		Severity:    domain.HazardSeverity(m.Severity),
		Status:      domain.HazardStatus(m.Status),
		ReportedBy:  m.ReportedBy,
		ResolvedAt:  m.ResolvedAt,
		ClosedAt:    m.ClosedAt,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
		Versioned:   domain.Versioned{Version: m.Version},
	}
}

// ToModelHazardAssignment converts a domain HazardAssignment to a model HazardAssignment
func ToModelHazardAssignment(d domain.HazardAssignment) models.HazardAssignment {
	return models.HazardAssignment{
		AssignmentID: d.AssignmentID,
		TenantID:     d.TenantID,
		HazardID:     d.HazardID,
		AssigneeID:   d.AssigneeID,
		AssignerID:   d.AssignerID,
		AssignedAt:   d.AssignedAt,
		DueDate:      d.DueDate,
		Status:       string(d.Status),
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainHazardAssignment converts a model HazardAssignment to a domain HazardAssignment
func ToDomainHazardAssignment(m models.HazardAssignment) domain.HazardAssignment {
	return domain.HazardAssignment{
		AssignmentID: m.AssignmentID,
		TenantID:     m.TenantID,
		HazardID:     m.HazardID,
		AssigneeID:   m.AssigneeID,
		AssignerID:   m.AssignerID,
		AssignedAt:   m.AssignedAt,
		DueDate:      m.DueDate,
		Status:       domain.HazardStatus(m.Status),
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelHazardComment converts a domain HazardComment to a model HazardComment
func ToModelHazardComment(d domain.HazardComment) models.HazardComment {
	return models.HazardComment(d)
}

// ToDomainHazardComment converts a model HazardComment to a domain HazardComment
func ToDomainHazardComment(m models.HazardComment) domain.HazardComment {
	return domain.HazardComment(m)
}
