package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_safety_app/internal/core/ports/repositories"
	"github.com/SscSPs/site_safety_app/internal/models"
	"github.com/SscSPs/site_safety_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const permitColumns = `permit_id, tenant_id, site_id, permit_type, description, status, start_date, end_date,
	requested_by, decided_by, decided_at, decision_notes, expired_at, is_active, version,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPermitRepository struct {
	BaseRepository
}

func newPgxPermitRepository(db *pgxpool.Pool) portsrepo.PermitRepositoryFacade {
	return &PgxPermitRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.PermitRepositoryFacade = (*PgxPermitRepository)(nil)

func (r *PgxPermitRepository) FindPermitByID(ctx context.Context, permitID string) (*domain.PermitRequest, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+permitColumns+` FROM permits WHERE permit_id = $1`, permitID)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Permit])
	if err != nil {
		return nil, findError(err, "permit", permitID)
	}
	permit := mapping.ToDomainPermit(m)
	return &permit, nil
}

func (r *PgxPermitRepository) ListPermits(ctx context.Context, tenantID string, filter domain.PermitFilter, page portsrepo.Page) ([]domain.PermitRequest, error) {
	var c conditions
	c.add("tenant_id = ?", tenantID)
	c.addIf("site_id = ?", filter.SiteID)
	addPermitStatus(&c, filter.Status, filter.AsOf)
	query := `SELECT ` + permitColumns + ` FROM permits` + c.where() +
		` ORDER BY created_at DESC, permit_id LIMIT ` + c.bind(page.Limit) + ` OFFSET ` + c.bind(page.Offset)

	rows, err := r.Pool.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query permits: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Permit])
	if err != nil {
		return nil, fmt.Errorf("failed to scan permit rows: %w", err)
	}
	permits := make([]domain.PermitRequest, len(ms))
	for i, m := range ms {
		permits[i] = mapping.ToDomainPermit(m)
	}
	return permits, nil
}

// addPermitStatus filters on the status a reader observes at asOf rather than the stored one.
func addPermitStatus(c *conditions, status domain.PermitStatus, asOf time.Time) {
	switch status {
	case "":
	case domain.PermitExpired:
		c.clauses = append(c.clauses, "(status = 'expired' OR (status = 'approved' AND end_date < "+c.bind(asOf)+"))")
	case domain.PermitApproved:
		c.clauses = append(c.clauses, "(status = 'approved' AND end_date >= "+c.bind(asOf)+")")
	default:
		c.add("status = ?", string(status))
	}
}

func (r *PgxPermitRepository) SavePermit(ctx context.Context, permit domain.PermitRequest) error {
	m := mapping.ToModelPermit(permit)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO permits (permit_id, tenant_id, site_id, permit_type, description, status, start_date, end_date,
		                     requested_by, is_active, version, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		m.PermitID, m.TenantID, m.SiteID, m.PermitType, m.Description, m.Status, m.StartDate, m.EndDate,
		m.RequestedBy, m.IsActive, m.Version, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return insertError(err, "permit", m.PermitID)
	}
	return nil
}

func (r *PgxPermitRepository) TransitionPermit(ctx context.Context, permit domain.PermitRequest, from domain.PermitStatus, expectedVersion int64) error {
	m := mapping.ToModelPermit(permit)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE permits
		SET status = $1, decided_by = $2, decided_at = $3, decision_notes = $4, expired_at = $5,
		    last_updated_at = $6, last_updated_by = $7, version = version + 1
		WHERE permit_id = $8 AND status = $9 AND version = $10`,
		m.Status, m.DecidedBy, m.DecidedAt, m.DecisionNotes, m.ExpiredAt,
		m.LastUpdatedAt, m.LastUpdatedBy, m.PermitID, string(from), expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to transition permit %s: %w", m.PermitID, err)
	}
	return expectSwapped(tag, "permit", m.PermitID)
}
