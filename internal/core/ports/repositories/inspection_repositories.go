package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// InspectionReader defines read operations for inspections
type InspectionReader interface {
	// FindInspectionByID retrieves a specific inspection.
	FindInspectionByID(ctx context.Context, inspectionID string) (*domain.Inspection, error)

	// ListInspections retrieves a tenant's inspections by scheduled date, newest first.
	ListInspections(ctx context.Context, tenantID string, filter domain.InspectionFilter, page Page) ([]domain.Inspection, error)

	// ListResponses retrieves the responses recorded for an inspection.
	ListResponses(ctx context.Context, inspectionID string) ([]domain.InspectionResponse, error)

	// ListCompletedInspections retrieves inspections completed in [from, to).
	ListCompletedInspections(ctx context.Context, tenantID string, from, to time.Time) ([]domain.Inspection, error)
}

// InspectionWriter defines write operations for inspections
type InspectionWriter interface {
	// SaveInspection persists a new inspection.
	SaveInspection(ctx context.Context, inspection domain.Inspection) error

	// RecordResponse upserts a response and, in the same transaction, moves a
	// scheduled inspection to in_progress and increments its version. Fails with
	// ErrConcurrentModification if the inspection stopped accepting responses.
	// Returns the stored inspection.
	RecordResponse(ctx context.Context, response domain.InspectionResponse, now time.Time) (*domain.Inspection, error)

	// CompleteInspection stores the score and the findings atomically by compare-and-swap.
	CompleteInspection(ctx context.Context, inspection domain.Inspection, findings []domain.InspectionFinding, from domain.InspectionStatus, expectedVersion int64) error

	// TransitionInspection persists a status change by compare-and-swap.
	TransitionInspection(ctx context.Context, inspection domain.Inspection, from domain.InspectionStatus, expectedVersion int64) error
}

// FindingManager defines operations on inspection findings
type FindingManager interface {
	// ListFindings retrieves the findings of an inspection.
	ListFindings(ctx context.Context, inspectionID string) ([]domain.InspectionFinding, error)

	// ListTenantFindings retrieves a tenant's findings, optionally by status.
	ListTenantFindings(ctx context.Context, tenantID string, status domain.FindingStatus, page Page) ([]domain.InspectionFinding, error)

	// FindFindingByID retrieves one finding.
	FindFindingByID(ctx context.Context, findingID string) (*domain.InspectionFinding, error)

	// UpdateFindingStatus moves a finding from one status to another.
	UpdateFindingStatus(ctx context.Context, finding domain.InspectionFinding, from domain.FindingStatus) error
}

// InspectionRepositoryFacade combines all inspection-related repository interfaces
type InspectionRepositoryFacade interface {
	InspectionReader
	InspectionWriter
	FindingManager
}
