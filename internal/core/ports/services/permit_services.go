package services

import (
	"context"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/dto"
)

// PermitReaderSvc defines read operations for permits. Reads evaluate expiry
// and persist an approved -> expired change the first time it is observed.
type PermitReaderSvc interface {
	GetPermit(ctx context.Context, p domain.Principal, permitID string) (*domain.PermitRequest, error)
	ListPermits(ctx context.Context, p domain.Principal, params dto.ListPermitsParams) ([]domain.PermitRequest, error)
}

// PermitWriterSvc defines write operations for permits
type PermitWriterSvc interface {
	RequestPermit(ctx context.Context, p domain.Principal, req dto.CreatePermitRequest) (*domain.PermitRequest, error)
	ApprovePermit(ctx context.Context, p domain.Principal, permitID string, req dto.DecidePermitRequest) (*domain.PermitRequest, error)
	DenyPermit(ctx context.Context, p domain.Principal, permitID string, req dto.DecidePermitRequest) (*domain.PermitRequest, error)
}

// PermitSvcFacade combines all permit-related service interfaces
type PermitSvcFacade interface {
	PermitReaderSvc
	PermitWriterSvc
}
