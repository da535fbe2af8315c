package mapping

import (
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/models"
)

// ToModelPermit converts a domain PermitRequest to a model Permit
func ToModelPermit(d domain.PermitRequest) models.Permit {
	return models.Permit{
		PermitID:      d.PermitID,
		TenantID:      d.TenantID,
		SiteID:        d.SiteID,
		PermitType:    d.PermitType,
		Description:   d.Description,
		Status:        string(d.Status),
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		RequestedBy:   d.RequestedBy,
		DecidedBy:     d.DecidedBy,
		DecidedAt:     d.DecidedAt,
		DecisionNotes: NullString(d.DecisionNotes),
		ExpiredAt:     d.ExpiredAt,
		IsActive:      d.IsActive,
		Version:       d.Version,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPermit converts a model Permit to a domain PermitRequest
func ToDomainPermit(m models.Permit) domain.PermitRequest {
	return domain.PermitRequest{
		PermitID:      m.PermitID,
		TenantID:      m.TenantID,
		SiteID:        m.SiteID,
		PermitType:    m.PermitType,
		Description:   m.Description,
		Status:        domain.PermitStatus(m.Status),
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		RequestedBy:   m.RequestedBy,
		DecidedBy:     m.DecidedBy,
		DecidedAt:     m.DecidedAt,
		DecisionNotes: m.DecisionNotes.String,
		ExpiredAt:     m.ExpiredAt,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
		Versioned:     domain.Versioned{Version: m.Version},
	}
}
