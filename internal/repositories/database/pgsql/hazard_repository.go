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
	"github.com/SscSPs/site_safety_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// hazardSelect joins every hazard with its active assignment, if any.
const hazardSelect = `
	SELECT h.hazard_id, h.tenant_id, h.site_id, h.title, h.description, h.location, h.severity, h.status,
	       h.reported_by, h.resolved_at, h.closed_at, h.is_active, h.version,
	       h.created_at, h.created_by, h.last_updated_at, h.last_updated_by,
	       a.assignment_id, a.assignee_id, a.assigner_id, a.assigned_at, a.due_date, a.status,
	       a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
	FROM hazards h
	LEFT JOIN hazard_assignments a ON a.hazard_id = h.hazard_id AND a.is_active`

type PgxHazardRepository struct {
	BaseRepository
}

func newPgxHazardRepository(db *pgxpool.Pool) portsrepo.HazardRepositoryFacade {
	return &PgxHazardRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.HazardRepositoryFacade = (*PgxHazardRepository)(nil)

// scanHazard reads one row of hazardSelect.
func scanHazard(row pgx.Row) (domain.HazardWithAssignment, error) {
	var h models.Hazard
	var (
		assignmentID, assigneeID, assignerID, status *string
		assignedAt, dueDate, createdAt, updatedAt    *time.Time
		createdBy, updatedBy                         *string
	)
	err := row.Scan(
		&h.HazardID, &h.TenantID, &h.SiteID, &h.Title, &h.Description, &h.Location, &h.Severity, &h.Status,
		&h.ReportedBy, &h.ResolvedAt, &h.ClosedAt, &h.IsActive, &h.Version,
		&h.CreatedAt, &h.CreatedBy, &h.LastUpdatedAt, &h.LastUpdatedBy,
		&assignmentID, &assigneeID, &assignerID, &assignedAt, &dueDate, &status,
		&createdAt, &createdBy, &updatedAt, &updatedBy,
	)
	if err != nil {
		return domain.HazardWithAssignment{}, err
	}

	result := domain.HazardWithAssignment{Hazard: mapping.ToDomainHazard(h)}
	if assignmentID != nil {
		a := mapping.ToDomainHazardAssignment(models.HazardAssignment{
			AssignmentID: *assignmentID,
			TenantID:     h.TenantID,
			HazardID:     h.HazardID,
			AssigneeID:   *assigneeID,
			AssignerID:   *assignerID,
			AssignedAt:   *assignedAt,
			DueDate:      *dueDate,
			Status:       *status,
			IsActive:     true,
			AuditFields: models.AuditFields{
				CreatedAt:     *createdAt,
				CreatedBy:     *createdBy,
				LastUpdatedAt: *updatedAt,
				LastUpdatedBy: *updatedBy,
			},
		})
		result.Assignment = &a
	}
	return result, nil
}

func (r *PgxHazardRepository) queryHazards(ctx context.Context, query string, args ...any) ([]domain.HazardWithAssignment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query hazards: %w", err)
	}
	defer rows.Close()

	hazards := []domain.HazardWithAssignment{}
	for rows.Next() {
		hw, err := scanHazard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hazard row: %w", err)
		}
		hazards = append(hazards, hw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hazard rows: %w", err)
	}
	return hazards, nil
}

func (r *PgxHazardRepository) FindHazardByID(ctx context.Context, hazardID string) (*domain.HazardWithAssignment, error) {
	hw, err := scanHazard(r.Pool.QueryRow(ctx, hazardSelect+` WHERE h.hazard_id = $1`, hazardID))
	if err != nil {
		return nil, findError(err, "hazard", hazardID)
	}
	return &hw, nil
}

// ListHazards pages newest first on (created_at, hazard_id). One extra row is
// fetched to decide whether a next page exists.
func (r *PgxHazardRepository) ListHazards(ctx context.Context, tenantID string, filter domain.HazardFilter, limit int, nextToken *string) ([]domain.HazardWithAssignment, *string, error) {
	var c conditions
	c.add("h.tenant_id = ?", tenantID)
	c.addIf("h.site_id = ?", filter.SiteID)
	c.addIf("h.status = ?", string(filter.Status))
	c.addIf("h.severity = ?", string(filter.Severity))
	c.addIf("a.assignee_id = ?", filter.AssigneeID)
	if nextToken != nil && *nextToken != "" {
		createdAt, hazardID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationFailedError("invalid nextToken")
		}
		c.clauses = append(c.clauses, fmt.Sprintf("(h.created_at, h.hazard_id) < (%s, %s)", c.bind(createdAt), c.bind(hazardID)))
	}

	fetchLimit := limit + 1
	query := hazardSelect + c.where() + " ORDER BY h.created_at DESC, h.hazard_id DESC LIMIT " + c.bind(fetchLimit)

	hazards, err := r.queryHazards(ctx, query, c.args...)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(hazards) > limit {
		hazards = hazards[:limit]
		last := hazards[limit-1].Hazard
		token := pagination.EncodeToken(last.CreatedAt, last.HazardID)
		next = &token
	}
	return hazards, next, nil
}

func (r *PgxHazardRepository) ListOverdueHazards(ctx context.Context, tenantID string, now time.Time) ([]domain.HazardWithAssignment, error) {
	return r.queryHazards(ctx, hazardSelect+`
		WHERE h.tenant_id = $1 AND h.is_active
		  AND a.due_date < $2
		  AND h.status NOT IN ('resolved', 'closed')
		ORDER BY a.due_date, h.hazard_id`,
		tenantID, now)
}

func (r *PgxHazardRepository) ListHazardFacts(ctx context.Context, tenantID string, from, to time.Time) ([]domain.HazardFact, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT h.hazard_id, h.site_id, a.assignee_id, a.due_date, h.status, h.resolved_at
		FROM hazard_assignments a
		JOIN hazards h ON h.hazard_id = a.hazard_id
		WHERE a.tenant_id = $1 AND a.due_date >= $2 AND a.due_date < $3 AND h.is_active`,
		tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query hazard facts: %w", err)
	}
	facts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.HazardFact, error) {
		var f domain.HazardFact
		var status string
		err := row.Scan(&f.HazardID, &f.SiteID, &f.AssigneeID, &f.DueDate, &status, &f.ResolvedAt)
		f.Status = domain.HazardStatus(status)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan hazard facts: %w", err)
	}
	return facts, nil
}

func (r *PgxHazardRepository) SaveHazard(ctx context.Context, hazard domain.HazardReport) error {
	m := mapping.ToModelHazard(hazard)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO hazards (hazard_id, tenant_id, site_id, title, description, location, severity, status,
		                     reported_by, is_active, version, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		m.HazardID, m.TenantID, m.SiteID, m.Title, m.Description, m.Location, m.Severity, m.Status,
		m.ReportedBy, m.IsActive, m.Version, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return insertError(err, "hazard", m.HazardID)
	}
	return nil
}

func (r *PgxHazardRepository) UpdateHazardDetails(ctx context.Context, hazard domain.HazardReport, expectedVersion int64) error {
	m := mapping.ToModelHazard(hazard)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE hazards
		SET title = $1, description = $2, location = $3, severity = $4,
		    last_updated_at = $5, last_updated_by = $6, version = version + 1
		WHERE hazard_id = $7 AND version = $8`,
		m.Title, m.Description, m.Location, m.Severity, m.LastUpdatedAt, m.LastUpdatedBy, m.HazardID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update hazard %s: %w", m.HazardID, err)
	}
	return expectSwapped(tag, "hazard", m.HazardID)
}

// swapHazardStatus is the compare-and-swap shared by transitions and assignment.
func swapHazardStatus(ctx context.Context, q querier, m models.Hazard, from domain.HazardStatus, expectedVersion int64) error {
	tag, err := q.Exec(ctx, `
		UPDATE hazards
		SET status = $1, resolved_at = $2, closed_at = $3,
		    last_updated_at = $4, last_updated_by = $5, version = version + 1
		WHERE hazard_id = $6 AND status = $7 AND version = $8`,
		m.Status, m.ResolvedAt, m.ClosedAt, m.LastUpdatedAt, m.LastUpdatedBy,
		m.HazardID, string(from), expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to transition hazard %s: %w", m.HazardID, err)
	}
	return expectSwapped(tag, "hazard", m.HazardID)
}

func (r *PgxHazardRepository) TransitionHazard(ctx context.Context, hazard domain.HazardReport, from domain.HazardStatus, expectedVersion int64) error {
	m := mapping.ToModelHazard(hazard)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := swapHazardStatus(ctx, tx, m, from, expectedVersion); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			UPDATE hazard_assignments
			SET status = $1, last_updated_at = $2, last_updated_by = $3
			WHERE hazard_id = $4 AND is_active`,
			m.Status, m.LastUpdatedAt, m.LastUpdatedBy, m.HazardID,
		)
		if err != nil {
			return fmt.Errorf("failed to mirror status onto assignment of hazard %s: %w", m.HazardID, err)
		}
		return nil
	})
}

func (r *PgxHazardRepository) CreateAssignment(ctx context.Context, hazard domain.HazardReport, assignment domain.HazardAssignment, from domain.HazardStatus, expectedVersion int64) error {
	m := mapping.ToModelHazard(hazard)
	a := mapping.ToModelHazardAssignment(assignment)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO hazard_assignments (assignment_id, tenant_id, hazard_id, assignee_id, assigner_id, assigned_at,
			                                due_date, status, is_active, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			a.AssignmentID, a.TenantID, a.HazardID, a.AssigneeID, a.AssignerID, a.AssignedAt,
			a.DueDate, a.Status, a.IsActive, a.CreatedAt, a.CreatedBy, a.LastUpdatedAt, a.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.NewAlreadyAssignedError(a.HazardID)
			}
			return insertError(err, "hazard assignment", a.AssignmentID)
		}
		return swapHazardStatus(ctx, tx, m, from, expectedVersion)
	})
}

func (r *PgxHazardRepository) SaveComment(ctx context.Context, comment domain.HazardComment) error {
	m := mapping.ToModelHazardComment(comment)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO hazard_comments (comment_id, tenant_id, hazard_id, author_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.CommentID, m.TenantID, m.HazardID, m.AuthorID, m.Body, m.CreatedAt,
	)
	if err != nil {
		return insertError(err, "hazard comment", m.CommentID)
	}
	return nil
}

func (r *PgxHazardRepository) ListComments(ctx context.Context, hazardID string) ([]domain.HazardComment, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT comment_id, tenant_id, hazard_id, author_id, body, created_at
		FROM hazard_comments
		WHERE hazard_id = $1
		ORDER BY created_at, comment_id`, hazardID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments of hazard %s: %w", hazardID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.HazardComment])
	if err != nil {
		return nil, fmt.Errorf("failed to scan comment rows: %w", err)
	}
	comments := make([]domain.HazardComment, len(ms))
	for i, m := range ms {
		comments[i] = mapping.ToDomainHazardComment(m)
	}
	return comments, nil
}
