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

const incidentColumns = `incident_id, tenant_id, site_id, title, description, severity, status, occurred_at,
	reported_by, involved_user_ids, root_cause, corrective_actions, preventative_measures,
	investigation_started_at, resolved_at, closed_at, is_active, version,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxIncidentRepository struct {
	BaseRepository
}

func newPgxIncidentRepository(db *pgxpool.Pool) portsrepo.IncidentRepositoryFacade {
	return &PgxIncidentRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.IncidentRepositoryFacade = (*PgxIncidentRepository)(nil)

func (r *PgxIncidentRepository) FindIncidentByID(ctx context.Context, incidentID string) (*domain.IncidentReport, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+incidentColumns+` FROM incidents WHERE incident_id = $1`, incidentID)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Incident])
	if err != nil {
		return nil, findError(err, "incident", incidentID)
	}
	incident := mapping.ToDomainIncident(m)
	return &incident, nil
}

func (r *PgxIncidentRepository) queryIncidents(ctx context.Context, query string, args ...any) ([]domain.IncidentReport, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Incident])
	if err != nil {
		return nil, fmt.Errorf("failed to scan incident rows: %w", err)
	}
	incidents := make([]domain.IncidentReport, len(ms))
	for i, m := range ms {
		incidents[i] = mapping.ToDomainIncident(m)
	}
	return incidents, nil
}

func (r *PgxIncidentRepository) ListIncidents(ctx context.Context, tenantID string, filter domain.IncidentFilter, page portsrepo.Page) ([]domain.IncidentReport, error) {
	var c conditions
	c.add("tenant_id = ?", tenantID)
	c.addIf("site_id = ?", filter.SiteID)
	c.addIf("status = ?", string(filter.Status))
	c.addIf("severity = ?", string(filter.Severity))
	query := `SELECT ` + incidentColumns + ` FROM incidents` + c.where() +
		` ORDER BY occurred_at DESC, incident_id LIMIT ` + c.bind(page.Limit) + ` OFFSET ` + c.bind(page.Offset)
	return r.queryIncidents(ctx, query, c.args...)
}

func (r *PgxIncidentRepository) ListIncidentsBetween(ctx context.Context, tenantID string, from, to time.Time) ([]domain.IncidentReport, error) {
	return r.queryIncidents(ctx, `
		SELECT `+incidentColumns+`
		FROM incidents
		WHERE tenant_id = $1 AND occurred_at >= $2 AND occurred_at < $3 AND is_active
		ORDER BY occurred_at`,
		tenantID, from, to)
}

func (r *PgxIncidentRepository) SaveIncident(ctx context.Context, incident domain.IncidentReport) error {
	m := mapping.ToModelIncident(incident)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO incidents (incident_id, tenant_id, site_id, title, description, severity, status, occurred_at,
		                       reported_by, involved_user_ids, is_active, version,
		                       created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		m.IncidentID, m.TenantID, m.SiteID, m.Title, m.Description, m.Severity, m.Status, m.OccurredAt,
		m.ReportedBy, m.InvolvedUserIDs, m.IsActive, m.Version,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return insertError(err, "incident", m.IncidentID)
	}
	return nil
}

func (r *PgxIncidentRepository) TransitionIncident(ctx context.Context, incident domain.IncidentReport, from domain.IncidentStatus, expectedVersion int64) error {
	m := mapping.ToModelIncident(incident)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE incidents
		SET status = $1, root_cause = $2, corrective_actions = $3, preventative_measures = $4,
		    investigation_started_at = $5, resolved_at = $6, closed_at = $7,
		    last_updated_at = $8, last_updated_by = $9, version = version + 1
		WHERE incident_id = $10 AND status = $11 AND version = $12`,
		m.Status, m.RootCause, m.CorrectiveActions, m.PreventativeMeasures,
		m.InvestigationStartedAt, m.ResolvedAt, m.ClosedAt,
		m.LastUpdatedAt, m.LastUpdatedBy, m.IncidentID, string(from), expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to transition incident %s: %w", m.IncidentID, err)
	}
	return expectSwapped(tag, "incident", m.IncidentID)
}
