package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/access"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_safety_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/SscSPs/site_safety_app/internal/platform/cache"
	"github.com/shopspring/decimal"
)

type tenantService struct {
	BaseService
	tenantRepo portsrepo.TenantRepositoryFacade
	scoreCache cache.ScoreCache
}

// NewTenantService creates a new tenant service. Weight changes invalidate the
// tenant's cached safety scores.
func NewTenantService(tenantRepo portsrepo.TenantRepositoryFacade, scoreCache cache.ScoreCache, options ...ServiceOption) portssvc.TenantSvcFacade {
	if scoreCache == nil {
		scoreCache = cache.NoopScoreCache{}
	}
	return &tenantService{
		BaseService: newBaseService(options...),
		tenantRepo:  tenantRepo,
		scoreCache:  scoreCache,
	}
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

func (s *tenantService) GetTenant(ctx context.Context, p domain.Principal) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.FindTenantByID(ctx, p.TenantID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load tenant", slog.String("tenant_id", p.TenantID))
	}
	if err := s.Authorize(ctx, p, access.ActionRead, access.Resource{Kind: access.KindTenant, ID: tenant.TenantID, TenantID: tenant.TenantID}); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) UpdateScoreWeights(ctx context.Context, p domain.Principal, req dto.UpdateScoreWeightsRequest) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.FindTenantByID(ctx, p.TenantID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load tenant", slog.String("tenant_id", p.TenantID))
	}
	if err := s.Authorize(ctx, p, access.ActionUpdate, access.Resource{Kind: access.KindTenant, ID: tenant.TenantID, TenantID: tenant.TenantID}); err != nil {
		return nil, err
	}

	var weights *domain.ScoreWeights
	if !req.Reset {
		w := domain.ScoreWeights{
			HazardTimeliness:     req.HazardTimeliness,
			TrainingCompletion:   req.TrainingCompletion,
			InspectionCompliance: req.InspectionCompliance,
			IncidentInverse:      req.IncidentInverse,
		}
		for _, v := range []struct {
			name  string
			value decimal.Decimal
		}{
			{"hazardTimeliness", w.HazardTimeliness},
			{"trainingCompletion", w.TrainingCompletion},
			{"inspectionCompliance", w.InspectionCompliance},
			{"incidentInverse", w.IncidentInverse},
		} {
			if v.value.IsNegative() {
				return nil, apperrors.NewValidationFailedError(v.name + " cannot be negative")
			}
		}
		if !w.Total().IsPositive() {
			return nil, apperrors.NewValidationFailedError("at least one weight must be positive")
		}
		weights = &w
	}

	if err := s.tenantRepo.UpdateScoreWeights(ctx, tenant.TenantID, weights, p.UserID, s.Now()); err != nil {
		return nil, s.repoError(ctx, err, "Failed to update score weights", slog.String("tenant_id", tenant.TenantID))
	}
	if err := s.scoreCache.InvalidateTenant(ctx, tenant.TenantID); err != nil {
		s.LogWarn(ctx, "Failed to invalidate cached safety scores",
			slog.String("error", err.Error()),
			slog.String("tenant_id", tenant.TenantID))
	}
	tenant.ScoreWeights = weights
	tenant.Touch(p.UserID, s.Now())

	s.LogInfo(ctx, "Score weights updated", slog.String("tenant_id", tenant.TenantID), slog.Bool("reset", req.Reset))
	return tenant, nil
}
