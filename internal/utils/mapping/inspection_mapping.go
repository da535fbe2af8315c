package mapping

import (
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/models"
)

// ToModelTemplate converts a domain InspectionTemplate to a model InspectionTemplate
func ToModelTemplate(d domain.InspectionTemplate) models.InspectionTemplate {
	return models.InspectionTemplate{
		TemplateID:  d.TemplateID,
		TenantID:    d.TenantID,
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Version:     d.Version,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTemplate converts a model InspectionTemplate to a domain InspectionTemplate without items
func ToDomainTemplate(m models.InspectionTemplate) domain.InspectionTemplate {
	return domain.InspectionTemplate{
		TemplateID:  m.TemplateID,
		TenantID:    m.TenantID,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		Version:     m.Version,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelChecklistItem converts a domain ChecklistItem to a model ChecklistItem
func ToModelChecklistItem(d domain.ChecklistItem) models.ChecklistItem {
	return models.ChecklistItem{
		ItemID:            d.ItemID,
		TenantID:          d.TenantID,
		TemplateID:        d.TemplateID,
		TemplateVersion:   d.TemplateVersion,
		Position:          d.Position,
		Category:          d.Category,
		Question:          d.Question,
		IsCritical:        d.IsCritical,
		ExpectedAnswer:    d.ExpectedAnswer,
		RecommendedAction: NullString(d.RecommendedAction),
	}
}

// ToDomainChecklistItem converts a model ChecklistItem to a domain ChecklistItem
func ToDomainChecklistItem(m models.ChecklistItem) domain.ChecklistItem {
	return domain.ChecklistItem{
		ItemID:            m.ItemID,
		TenantID:          m.TenantID,
		TemplateID:        m.TemplateID,
		TemplateVersion:   m.TemplateVersion,
		Position:          m.Position,
		Category:          m.Category,
		Question:          m.Question,
		IsCritical:        m.IsCritical,
		ExpectedAnswer:    m.ExpectedAnswer,
		RecommendedAction: m.RecommendedAction.String,
	}
}

// ToModelInspection converts a domain Inspection to a model Inspection
func ToModelInspection(d domain.Inspection) models.Inspection {
	return models.Inspection{
		InspectionID:    d.InspectionID,
		TenantID:        d.TenantID,
		SiteID:          d.SiteID,
		TemplateID:      d.TemplateID,
		TemplateVersion: d.TemplateVersion,
		AssigneeID:      d.AssigneeID,
		ScheduledDate:   d.ScheduledDate,
		Location:        d.Location,
		Status:          string(d.Status),
		Score:           d.Score,
		StartedAt:       d.StartedAt,
		CompletedAt:     d.CompletedAt,
		IsActive:        d.IsActive,
		Version:         d.Version,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInspection converts a model Inspection to a domain Inspection
func ToDomainInspection(m models.Inspection) domain.Inspection {
	return domain.Inspection{
		InspectionID:    m.InspectionID,
		TenantID:        m.TenantID,
		SiteID:          m.SiteID,
		TemplateID:      m.TemplateID,
		TemplateVersion: m.TemplateVersion,
		AssigneeID:      m.AssigneeID,
		ScheduledDate:   m.ScheduledDate,
		Location:        m.Location,
		Status:          domain.InspectionStatus(m.Status),
		Score:           m.Score,
		StartedAt:       m.StartedAt,
		CompletedAt:     m.CompletedAt,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
		Versioned:       domain.Versioned{Version: m.Version},
	}
}

// ToModelInspectionResponse converts a domain InspectionResponse to a model InspectionResponse
func ToModelInspectionResponse(d domain.InspectionResponse) models.InspectionResponse {
	return models.InspectionResponse{
		ResponseID:   d.ResponseID,
		TenantID:     d.TenantID,
		InspectionID: d.InspectionID,
		ItemID:       d.ItemID,
		Answer:       d.Answer,
		Notes:        NullString(d.Notes),
		RespondedBy:  d.RespondedBy,
		RespondedAt:  d.RespondedAt,
	}
}

// ToDomainInspectionResponse converts a model InspectionResponse to a domain InspectionResponse
func ToDomainInspectionResponse(m models.InspectionResponse) domain.InspectionResponse {
	return domain.InspectionResponse{
		ResponseID:   m.ResponseID,
		TenantID:     m.TenantID,
		InspectionID: m.InspectionID,
		ItemID:       m.ItemID,
		Answer:       m.Answer,
		Notes:        m.Notes.String,
		RespondedBy:  m.RespondedBy,
		RespondedAt:  m.RespondedAt,
	}
}

// ToModelFinding converts a domain InspectionFinding to a model InspectionFinding
func ToModelFinding(d domain.InspectionFinding) models.InspectionFinding {
	return models.InspectionFinding{
		FindingID:         d.FindingID,
		TenantID:          d.TenantID,
		InspectionID:      d.InspectionID,
		ItemID:            d.ItemID,
		Severity:          string(d.Severity),
		Location:          d.Location,
		Description:       d.Description,
		RecommendedAction: d.RecommendedAction,
		Status:            string(d.Status),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFinding converts a model InspectionFinding to a domain InspectionFinding
func ToDomainFinding(m models.InspectionFinding) domain.InspectionFinding {
	return domain.InspectionFinding{
		FindingID:         m.FindingID,
		TenantID:          m.TenantID,
		InspectionID:      m.InspectionID,
		ItemID:            m.ItemID,
		Severity:          domain.FindingSeverity(m.Severity),
		Location:          m.Location,
		Description:       m.Description,
		RecommendedAction: m.RecommendedAction,
		Status:            domain.FindingStatus(m.Status),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
