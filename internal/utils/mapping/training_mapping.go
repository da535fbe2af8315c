package mapping

import (
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/models"
)

// ToModelTraining converts a domain TrainingRecord to a model TrainingRecord
func ToModelTraining(d domain.TrainingRecord) models.TrainingRecord {
	return models.TrainingRecord{
		TrainingID:  d.TrainingID,
		TenantID:    d.TenantID,
		UserID:      d.UserID,
		CourseName:  d.CourseName,
		Status:      string(d.Status),
		AssignedAt:  d.AssignedAt,
		DueDate:     d.DueDate,
		CompletedAt: d.CompletedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTraining converts a model TrainingRecord to a domain TrainingRecord
func ToDomainTraining(m models.TrainingRecord) domain.TrainingRecord {
	return domain.TrainingRecord{
		TrainingID:  m.TrainingID,
		TenantID:    m.TenantID,
		UserID:      m.UserID,
		CourseName:  m.CourseName,
		Status:      domain.TrainingStatus(m.Status),
		AssignedAt:  m.AssignedAt,
		DueDate:     m.DueDate,
		CompletedAt: m.CompletedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
