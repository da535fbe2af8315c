package repositories

import (
	"context"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// PermitReader defines read operations for permit data
type PermitReader interface {
	// FindPermitByID retrieves the stored permit, without evaluating expiry.
	FindPermitByID(ctx context.Context, permitID string) (*domain.PermitRequest, error)

	// ListPermits retrieves a tenant's permits newest first.
	ListPermits(ctx context.Context, tenantID string, filter domain.PermitFilter, page Page) ([]domain.PermitRequest, error)
}

// PermitWriter defines write operations for permit data
type PermitWriter interface {
	// SavePermit persists a new permit request.
	SavePermit(ctx context.Context, permit domain.PermitRequest) error

	// TransitionPermit persists a status change by compare-and-swap.
	TransitionPermit(ctx context.Context, permit domain.PermitRequest, from domain.PermitStatus, expectedVersion int64) error
}

// PermitRepositoryFacade combines all permit-related repository interfaces
type PermitRepositoryFacade interface {
	PermitReader
	PermitWriter
}
