package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/core/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateScoreWeights_InvalidatesCache(t *testing.T) {
	ctx := context.Background()
	tenantRepo := new(MockTenantRepository)
	cache := newMemoryScoreCache()
	clock := &fixedClock{now: t0}
	svc := services.NewTenantService(tenantRepo, cache, services.WithClock(clock.Now))

	tenant := &domain.Tenant{TenantID: uuid.NewString(), Name: "Acme Builders", IsActive: true}
	officer := activePrincipal(tenant.TenantID, domain.RoleSafetyOfficer)
	req := dto.UpdateScoreWeightsRequest{
		HazardTimeliness:     decimal.NewFromInt(2),
		TrainingCompletion:   decimal.NewFromInt(1),
		InspectionCompliance: decimal.NewFromInt(1),
		IncidentInverse:      decimal.Zero,
	}

	tenantRepo.On("FindTenantByID", ctx, tenant.TenantID).Return(tenant, nil).Once()
	tenantRepo.On("UpdateScoreWeights", ctx, tenant.TenantID, mock.MatchedBy(func(w *domain.ScoreWeights) bool {
		return w != nil && w.Total().Equal(decimal.NewFromInt(4))
	}), officer.UserID, t0).Return(nil).Once()

	updated, err := svc.UpdateScoreWeights(ctx, officer, req)

	require.NoError(t, err)
	require.NotNil(t, updated.ScoreWeights)
	assert.Equal(t, []string{tenant.TenantID}, cache.invalidated)
	tenantRepo.AssertExpectations(t)
}

func TestUpdateScoreWeights_NegativeRejected(t *testing.T) {
	ctx := context.Background()
	tenantRepo := new(MockTenantRepository)
	svc := services.NewTenantService(tenantRepo, nil)
	tenant := &domain.Tenant{TenantID: uuid.NewString()}
	officer := activePrincipal(tenant.TenantID, domain.RoleSafetyOfficer)
	tenantRepo.On("FindTenantByID", ctx, tenant.TenantID).Return(tenant, nil).Once()

	_, err := svc.UpdateScoreWeights(ctx, officer, dto.UpdateScoreWeightsRequest{HazardTimeliness: decimal.NewFromInt(-1), TrainingCompletion: decimal.NewFromInt(2)})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateScoreWeights_EmployeeDenied(t *testing.T) {
	ctx := context.Background()
	tenantRepo := new(MockTenantRepository)
	svc := services.NewTenantService(tenantRepo, nil)
	tenant := &domain.Tenant{TenantID: uuid.NewString()}
	worker := activePrincipal(tenant.TenantID, domain.RoleEmployee)
	tenantRepo.On("FindTenantByID", ctx, tenant.TenantID).Return(tenant, nil).Once()

	_, err := svc.UpdateScoreWeights(ctx, worker, dto.UpdateScoreWeightsRequest{Reset: true})

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	tenantRepo.AssertNotCalled(t, "UpdateScoreWeights", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
