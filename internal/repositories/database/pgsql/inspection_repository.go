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
)

const (
	inspectionColumns = `inspection_id, tenant_id, site_id, template_id, template_version, assignee_id, scheduled_date,
	location, status, score, started_at, completed_at, is_active, version,
	created_at, created_by, last_updated_at, last_updated_by`
	responseColumns = `response_id, tenant_id, inspection_id, item_id, answer, notes, responded_by, responded_at`
	findingColumns  = `finding_id, tenant_id, inspection_id, item_id, severity, location, description,
	recommended_action, status, created_at, created_by, last_updated_at, last_updated_by`
)

type PgxInspectionRepository struct {
	BaseRepository
}

func newPgxInspectionRepository(db *pgxpool.Pool) portsrepo.InspectionRepositoryFacade {
	return &PgxInspectionRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.InspectionRepositoryFacade = (*PgxInspectionRepository)(nil)

func findInspection(ctx context.Context, q querier, inspectionID string, lock bool) (*domain.Inspection, error) {
	query := `SELECT ` + inspectionColumns + ` FROM inspections WHERE inspection_id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	rows, _ := q.Query(ctx, query, inspectionID)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Inspection])
	if err != nil {
		return nil, findError(err, "inspection", inspectionID)
	}
	inspection := mapping.ToDomainInspection(m)
	return &inspection, nil
}

func (r *PgxInspectionRepository) FindInspectionByID(ctx context.Context, inspectionID string) (*domain.Inspection, error) {
	return findInspection(ctx, r.Pool, inspectionID, false)
}

func (r *PgxInspectionRepository) queryInspections(ctx context.Context, query string, args ...any) ([]domain.Inspection, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inspections: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Inspection])
	if err != nil {
		return nil, fmt.Errorf("failed to scan inspection rows: %w", err)
	}
	inspections := make([]domain.Inspection, len(ms))
	for i, m := range ms {
		inspections[i] = mapping.ToDomainInspection(m)
	}
	return inspections, nil
}

func (r *PgxInspectionRepository) ListInspections(ctx context.Context, tenantID string, filter domain.InspectionFilter, page portsrepo.Page) ([]domain.Inspection, error) {
	var c conditions
	c.add("tenant_id = ?", tenantID)
	c.addIf("site_id = ?", filter.SiteID)
	c.addIf("status = ?", string(filter.Status))
	c.addIf("assignee_id = ?", filter.AssigneeID)
	query := `SELECT ` + inspectionColumns + ` FROM inspections` + c.where() +
		` ORDER BY scheduled_date DESC, inspection_id LIMIT ` + c.bind(page.Limit) + ` OFFSET ` + c.bind(page.Offset)
	return r.queryInspections(ctx, query, c.args...)
}

func (r *PgxInspectionRepository) ListCompletedInspections(ctx context.Context, tenantID string, from, to time.Time) ([]domain.Inspection, error) {
	return r.queryInspections(ctx, `
		SELECT `+inspectionColumns+`
		FROM inspections
		WHERE tenant_id = $1 AND status = 'completed' AND completed_at >= $2 AND completed_at < $3
		ORDER BY completed_at`,
		tenantID, from, to)
}

func (r *PgxInspectionRepository) ListResponses(ctx context.Context, inspectionID string) ([]domain.InspectionResponse, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+responseColumns+`
		FROM inspection_responses
		WHERE inspection_id = $1
		ORDER BY responded_at, response_id`, inspectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses of inspection %s: %w", inspectionID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.InspectionResponse])
	if err != nil {
		return nil, fmt.Errorf("failed to scan response rows: %w", err)
	}
	responses := make([]domain.InspectionResponse, len(ms))
	for i, m := range ms {
		responses[i] = mapping.ToDomainInspectionResponse(m)
	}
	return responses, nil
}

func (r *PgxInspectionRepository) SaveInspection(ctx context.Context, inspection domain.Inspection) error {
	m := mapping.ToModelInspection(inspection)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO inspections (inspection_id, tenant_id, site_id, template_id, template_version, assignee_id,
		                         scheduled_date, location, status, is_active, version,
		                         created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		m.InspectionID, m.TenantID, m.SiteID, m.TemplateID, m.TemplateVersion, m.AssigneeID,
		m.ScheduledDate, m.Location, m.Status, m.IsActive, m.Version,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return insertError(err, "inspection", m.InspectionID)
	}
	return nil
}

// RecordResponse locks the inspection row so a response can never land after completion.
func (r *PgxInspectionRepository) RecordResponse(ctx context.Context, response domain.InspectionResponse, now time.Time) (*domain.Inspection, error) {
	m := mapping.ToModelInspectionResponse(response)
	var stored *domain.Inspection
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		inspection, err := findInspection(ctx, tx, m.InspectionID, true)
		if err != nil {
			return err
		}
		switch inspection.Status {
		case domain.InspectionScheduled, domain.InspectionInProgress:
		default:
			return apperrors.NewConcurrentModificationError("inspection", m.InspectionID)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO inspection_responses (`+responseColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (inspection_id, item_id) DO UPDATE SET
				answer = EXCLUDED.answer,
				notes = EXCLUDED.notes,
				responded_by = EXCLUDED.responded_by,
				responded_at = EXCLUDED.responded_at`,
			m.ResponseID, m.TenantID, m.InspectionID, m.ItemID, m.Answer, m.Notes, m.RespondedBy, m.RespondedAt,
		)
		if err != nil {
			return insertError(err, "inspection response", m.ResponseID)
		}

		// Every response bumps the version so a completion scored from older answers fails its swap.
		starting := inspection.Status == domain.InspectionScheduled
		_, err = tx.Exec(ctx, `
			UPDATE inspections
			SET status = CASE WHEN status = 'scheduled' THEN 'in_progress' ELSE status END,
			    started_at = COALESCE(started_at, $1),
			    last_updated_at = $1, last_updated_by = $2, version = version + 1
			WHERE inspection_id = $3`,
			now, m.RespondedBy, m.InspectionID,
		)
		if err != nil {
			return fmt.Errorf("failed to update inspection %s after response: %w", m.InspectionID, err)
		}
		if starting {
			inspection.Status = domain.InspectionInProgress
			inspection.StartedAt = &now
		}
		inspection.Touch(m.RespondedBy, now)
		inspection.Version++
		stored = inspection
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func swapInspectionStatus(ctx context.Context, q querier, m models.Inspection, from domain.InspectionStatus, expectedVersion int64) error {
	tag, err := q.Exec(ctx, `
		UPDATE inspections
		SET status = $1, score = $2, started_at = $3, completed_at = $4,
		    last_updated_at = $5, last_updated_by = $6, version = version + 1
		WHERE inspection_id = $7 AND status = $8 AND version = $9`,
		m.Status, m.Score, m.StartedAt, m.CompletedAt, m.LastUpdatedAt, m.LastUpdatedBy,
		m.InspectionID, string(from), expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to transition inspection %s: %w", m.InspectionID, err)
	}
	return expectSwapped(tag, "inspection", m.InspectionID)
}

func (r *PgxInspectionRepository) CompleteInspection(ctx context.Context, inspection domain.Inspection, findings []domain.InspectionFinding, from domain.InspectionStatus, expectedVersion int64) error {
	m := mapping.ToModelInspection(inspection)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := swapInspectionStatus(ctx, tx, m, from, expectedVersion); err != nil {
			return err
		}
		if len(findings) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for _, f := range findings {
			fm := mapping.ToModelFinding(f)
			batch.Queue(`
				INSERT INTO inspection_findings (`+findingColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
				fm.FindingID, fm.TenantID, fm.InspectionID, fm.ItemID, fm.Severity, fm.Location, fm.Description,
				fm.RecommendedAction, fm.Status, fm.CreatedAt, fm.CreatedBy, fm.LastUpdatedAt, fm.LastUpdatedBy)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert findings of inspection %s: %w", m.InspectionID, err)
		}
		return nil
	})
}

func (r *PgxInspectionRepository) TransitionInspection(ctx context.Context, inspection domain.Inspection, from domain.InspectionStatus, expectedVersion int64) error {
	return swapInspectionStatus(ctx, r.Pool, mapping.ToModelInspection(inspection), from, expectedVersion)
}

func (r *PgxInspectionRepository) queryFindings(ctx context.Context, query string, args ...any) ([]domain.InspectionFinding, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query findings: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.InspectionFinding])
	if err != nil {
		return nil, fmt.Errorf("failed to scan finding rows: %w", err)
	}
	findings := make([]domain.InspectionFinding, len(ms))
	for i, m := range ms {
		findings[i] = mapping.ToDomainFinding(m)
	}
	return findings, nil
}

func (r *PgxInspectionRepository) ListFindings(ctx context.Context, inspectionID string) ([]domain.InspectionFinding, error) {
	return r.queryFindings(ctx, `
		SELECT `+findingColumns+` FROM inspection_findings
		WHERE inspection_id = $1
		ORDER BY created_at, finding_id`, inspectionID)
}

func (r *PgxInspectionRepository) ListTenantFindings(ctx context.Context, tenantID string, status domain.FindingStatus, page portsrepo.Page) ([]domain.InspectionFinding, error) {
	var c conditions
	c.add("tenant_id = ?", tenantID)
	c.addIf("status = ?", string(status))
	query := `SELECT ` + findingColumns + ` FROM inspection_findings` + c.where() +
		` ORDER BY created_at DESC, finding_id LIMIT ` + c.bind(page.Limit) + ` OFFSET ` + c.bind(page.Offset)
	return r.queryFindings(ctx, query, c.args...)
}

func (r *PgxInspectionRepository) FindFindingByID(ctx context.Context, findingID string) (*domain.InspectionFinding, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+findingColumns+` FROM inspection_findings WHERE finding_id = $1`, findingID)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.InspectionFinding])
	if err != nil {
		return nil, findError(err, "finding", findingID)
	}
	finding := mapping.ToDomainFinding(m)
	return &finding, nil
}

func (r *PgxInspectionRepository) UpdateFindingStatus(ctx context.Context, finding domain.InspectionFinding, from domain.FindingStatus) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE inspection_findings
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE finding_id = $4 AND status = $5`,
		string(finding.Status), finding.LastUpdatedAt, finding.LastUpdatedBy, finding.FindingID, string(from),
	)
	if err != nil {
		return fmt.Errorf("failed to update finding %s: %w", finding.FindingID, err)
	}
	return expectSwapped(tag, "finding", finding.FindingID)
}
