package mapping

import (
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/models"
)

// ToModelTenant converts a domain Tenant to a model Tenant
func ToModelTenant(d domain.Tenant) models.Tenant {
	m := models.Tenant{
		TenantID:    d.TenantID,
		Name:        d.Name,
		Slug:        d.Slug,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if w := d.ScoreWeights; w != nil {
		m.WeightHazardTimeliness = &w.HazardTimeliness
		m.WeightTrainingCompletion = &w.TrainingCompletion
		m.WeightInspectionCompliance = &w.InspectionCompliance
		m.WeightIncidentInverse = &w.IncidentInverse
	}
	return m
}

// ToDomainTenant converts a model Tenant to a domain Tenant. The override is
// only restored when every weight column is set.
func ToDomainTenant(m models.Tenant) domain.Tenant {
	d := domain.Tenant{
		TenantID:    m.TenantID,
		Name:        m.Name,
		Slug:        m.Slug,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.WeightHazardTimeliness != nil && m.WeightTrainingCompletion != nil &&
		m.WeightInspectionCompliance != nil && m.WeightIncidentInverse != nil {
		d.ScoreWeights = &domain.ScoreWeights{
			HazardTimeliness:     *m.WeightHazardTimeliness,
			TrainingCompletion:   *m.WeightTrainingCompletion,
			InspectionCompliance: *m.WeightInspectionCompliance,
			IncidentInverse:      *m.WeightIncidentInverse,
		}
	}
	return d
}
