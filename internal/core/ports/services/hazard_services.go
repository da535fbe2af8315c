package services

import (
	"context"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/dto"
)

// HazardReaderSvc defines read operations for hazards
type HazardReaderSvc interface {
	// GetHazard retrieves a hazard with its active assignment.
	GetHazard(ctx context.Context, p domain.Principal, hazardID string) (*domain.HazardWithAssignment, error)

	// ListHazards retrieves a page of the tenant's hazards and the token of the next page.
	ListHazards(ctx context.Context, p domain.Principal, params dto.ListHazardsParams) ([]domain.HazardWithAssignment, *string, error)

	// ListOverdueHazards retrieves hazards whose assignment is past due.
	ListOverdueHazards(ctx context.Context, p domain.Principal) ([]domain.HazardWithAssignment, error)

	// IsOverdue evaluates the derived overdue flag against the service clock.
	IsOverdue(h domain.HazardWithAssignment) bool
}

// HazardWriterSvc defines write operations for hazards
type HazardWriterSvc interface {
	// CreateHazard reports a new hazard in status open.
	CreateHazard(ctx context.Context, p domain.Principal, req dto.CreateHazardRequest) (*domain.HazardWithAssignment, error)

	// UpdateHazard edits the descriptive fields of a hazard that is not closed.
	UpdateHazard(ctx context.Context, p domain.Principal, hazardID string, req dto.UpdateHazardRequest) (*domain.HazardWithAssignment, error)

	// AssignHazard creates the hazard's assignment with a severity-derived due date.
	AssignHazard(ctx context.Context, p domain.Principal, hazardID string, req dto.AssignHazardRequest) (*domain.HazardWithAssignment, error)

	// TransitionHazard moves a hazard along its lifecycle.
	TransitionHazard(ctx context.Context, p domain.Principal, hazardID string, req dto.TransitionHazardRequest) (*domain.HazardWithAssignment, error)
}

// HazardCommentSvc manages hazard comments
type HazardCommentSvc interface {
	AddComment(ctx context.Context, p domain.Principal, hazardID string, req dto.AddCommentRequest) (*domain.HazardComment, error)
	ListComments(ctx context.Context, p domain.Principal, hazardID string) ([]domain.HazardComment, error)
}

// HazardSvcFacade combines all hazard-related service interfaces
type HazardSvcFacade interface {
	HazardReaderSvc
	HazardWriterSvc
	HazardCommentSvc
}
