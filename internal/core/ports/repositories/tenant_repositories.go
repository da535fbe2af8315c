package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// TenantReader defines read operations for tenant data
type TenantReader interface {
	// FindTenantByID retrieves a tenant by its ID.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)
}

// TenantWriter defines write operations for tenant data
type TenantWriter interface {
	// CreateTenantWithOwner inserts a tenant and its first user in one transaction.
	CreateTenantWithOwner(ctx context.Context, tenant domain.Tenant, owner domain.User) error

	// UpdateScoreWeights sets or clears (nil) the tenant's score weight override.
	UpdateScoreWeights(ctx context.Context, tenantID string, weights *domain.ScoreWeights, updatedBy string, now time.Time) error
}

// TenantRepositoryFacade combines all tenant-related repository interfaces
type TenantRepositoryFacade interface {
	TenantReader
	TenantWriter
}
