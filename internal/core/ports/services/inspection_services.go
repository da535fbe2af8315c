package services

import (
	"context"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/dto"
)

// TemplateSvcFacade manages versioned inspection templates
type TemplateSvcFacade interface {
	CreateTemplate(ctx context.Context, p domain.Principal, req dto.CreateTemplateRequest) (*domain.InspectionTemplate, error)
	GetTemplate(ctx context.Context, p domain.Principal, templateID string) (*domain.InspectionTemplate, error)
	ListTemplates(ctx context.Context, p domain.Principal, params dto.ListParams) ([]domain.InspectionTemplate, error)

	// UpdateTemplate publishes the next checklist version.
	UpdateTemplate(ctx context.Context, p domain.Principal, templateID string, req dto.UpdateTemplateRequest) (*domain.InspectionTemplate, error)
	DeleteTemplate(ctx context.Context, p domain.Principal, templateID string) error
}

// InspectionWorkflowSvc runs inspections from instantiation to completion
type InspectionWorkflowSvc interface {
	// Instantiate schedules an inspection bound to the template's current version.
	Instantiate(ctx context.Context, p domain.Principal, templateID string, req dto.InstantiateRequest) (*domain.Inspection, error)

	// RecordResponse stores the answer to one checklist item.
	RecordResponse(ctx context.Context, p domain.Principal, inspectionID string, req dto.RecordResponseRequest) (*domain.InspectionResponse, *domain.Inspection, error)

	// Complete scores the inspection and raises findings. Completing again
	// returns the stored result.
	Complete(ctx context.Context, p domain.Principal, inspectionID string) (*domain.InspectionResult, error)

	Cancel(ctx context.Context, p domain.Principal, inspectionID string) (*domain.Inspection, error)
}

// InspectionReaderSvc defines read operations for inspections
type InspectionReaderSvc interface {
	GetInspection(ctx context.Context, p domain.Principal, inspectionID string) (*domain.InspectionDetail, error)
	ListInspections(ctx context.Context, p domain.Principal, params dto.ListInspectionsParams) ([]domain.Inspection, error)
}

// FindingSvc manages the remediation of findings
type FindingSvc interface {
	ListFindings(ctx context.Context, p domain.Principal, params dto.ListFindingsParams) ([]domain.InspectionFinding, error)
	UpdateFinding(ctx context.Context, p domain.Principal, findingID string, req dto.UpdateFindingRequest) (*domain.InspectionFinding, error)
}

// InspectionSvcFacade combines all inspection-related service interfaces
type InspectionSvcFacade interface {
	InspectionWorkflowSvc
	InspectionReaderSvc
	FindingSvc
}
