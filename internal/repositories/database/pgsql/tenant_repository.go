package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_safety_app/internal/core/ports/repositories"
	"github.com/SscSPs/site_safety_app/internal/models"
	"github.com/SscSPs/site_safety_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const tenantColumns = `tenant_id, name, slug, is_active,
	weight_hazard_timeliness, weight_training_completion, weight_inspection_compliance, weight_incident_inverse,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTenantRepository struct {
	BaseRepository
}

func newPgxTenantRepository(db *pgxpool.Pool) portsrepo.TenantRepositoryFacade {
	return &PgxTenantRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE tenant_id = $1`, tenantID)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Tenant])
	if err != nil {
		return nil, findError(err, "tenant", tenantID)
	}
	tenant := mapping.ToDomainTenant(m)
	return &tenant, nil
}

// CreateTenantWithOwner inserts the tenant and its first user. A taken slug or
// email fails the whole registration.
func (r *PgxTenantRepository) CreateTenantWithOwner(ctx context.Context, tenant domain.Tenant, owner domain.User) error {
	mt := mapping.ToModelTenant(tenant)
	mu := mapping.ToModelUser(owner)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO tenants (tenant_id, name, slug, is_active, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			mt.TenantID, mt.Name, mt.Slug, mt.IsActive,
			mt.CreatedAt, mt.CreatedBy, mt.LastUpdatedAt, mt.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.NewConflictError("tenant slug " + mt.Slug + " is already taken")
			}
			return fmt.Errorf("failed to insert tenant: %w", err)
		}
		if err := insertUser(ctx, tx, mu); err != nil {
			return err
		}
		return nil
	})
}

func (r *PgxTenantRepository) UpdateScoreWeights(ctx context.Context, tenantID string, weights *domain.ScoreWeights, updatedBy string, now time.Time) error {
	var h, t, i, inc *decimal.Decimal
	if weights != nil {
		h, t, i, inc = &weights.HazardTimeliness, &weights.TrainingCompletion, &weights.InspectionCompliance, &weights.IncidentInverse
	}
	tag, err := r.Pool.Exec(ctx, `
		UPDATE tenants
		SET weight_hazard_timeliness = $1, weight_training_completion = $2,
		    weight_inspection_compliance = $3, weight_incident_inverse = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE tenant_id = $7`,
		h, t, i, inc, now, updatedBy, tenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update score weights for tenant %s: %w", tenantID, err)
	}
	return expectOneRow(tag, "tenant", tenantID)
}
