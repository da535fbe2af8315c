package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// HazardReader defines read operations for hazard data
type HazardReader interface {
	// FindHazardByID retrieves a hazard with its active assignment, if any.
	FindHazardByID(ctx context.Context, hazardID string) (*domain.HazardWithAssignment, error)

	// ListHazards retrieves a tenant's hazards newest first using keyset pagination.
	ListHazards(ctx context.Context, tenantID string, filter domain.HazardFilter, limit int, nextToken *string) ([]domain.HazardWithAssignment, *string, error)

	// ListOverdueHazards retrieves hazards whose active assignment is past due at now.
	ListOverdueHazards(ctx context.Context, tenantID string, now time.Time) ([]domain.HazardWithAssignment, error)

	// ListHazardFacts retrieves every assignment of a tenant due in [from, to).
	ListHazardFacts(ctx context.Context, tenantID string, from, to time.Time) ([]domain.HazardFact, error)
}

// HazardWriter defines write operations for hazard data.
// Updates are compare-and-swap on (status, version) and fail with
// apperrors.ErrConcurrentModification when the stored row moved on.
type HazardWriter interface {
	// SaveHazard persists a new hazard.
	SaveHazard(ctx context.Context, hazard domain.HazardReport) error

	// UpdateHazardDetails updates the descriptive fields of a hazard.
	UpdateHazardDetails(ctx context.Context, hazard domain.HazardReport, expectedVersion int64) error

	// TransitionHazard persists a status change and mirrors it onto the active assignment.
	TransitionHazard(ctx context.Context, hazard domain.HazardReport, from domain.HazardStatus, expectedVersion int64) error

	// CreateAssignment inserts the assignment and moves the hazard to the
	// assignment's status atomically. Fails with apperrors.ErrAlreadyAssigned
	// when an active assignment exists.
	CreateAssignment(ctx context.Context, hazard domain.HazardReport, assignment domain.HazardAssignment, from domain.HazardStatus, expectedVersion int64) error
}

// HazardCommentManager defines operations on hazard comments
type HazardCommentManager interface {
	// SaveComment persists a new comment.
	SaveComment(ctx context.Context, comment domain.HazardComment) error

	// ListComments retrieves a hazard's comments oldest first.
	ListComments(ctx context.Context, hazardID string) ([]domain.HazardComment, error)
}

// HazardRepositoryFacade combines all hazard-related repository interfaces
type HazardRepositoryFacade interface {
	HazardReader
	HazardWriter
	HazardCommentManager
}
