package services

import (
	"context"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/dto"
)

// TenantSvcFacade reads the caller's tenant and manages its score weights.
type TenantSvcFacade interface {
	GetTenant(ctx context.Context, p domain.Principal) (*domain.Tenant, error)

	// UpdateScoreWeights sets or resets the tenant override of the default weights.
	UpdateScoreWeights(ctx context.Context, p domain.Principal, req dto.UpdateScoreWeightsRequest) (*domain.Tenant, error)
}
