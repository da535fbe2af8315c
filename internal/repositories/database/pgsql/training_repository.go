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

const trainingColumns = `training_id, tenant_id, user_id, course_name, status, assigned_at, due_date, completed_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTrainingRepository struct {
	BaseRepository
}

func newPgxTrainingRepository(db *pgxpool.Pool) portsrepo.TrainingRepositoryFacade {
	return &PgxTrainingRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.TrainingRepositoryFacade = (*PgxTrainingRepository)(nil)

func (r *PgxTrainingRepository) FindTrainingByID(ctx context.Context, trainingID string) (*domain.TrainingRecord, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+trainingColumns+` FROM training_records WHERE training_id = $1`, trainingID)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.TrainingRecord])
	if err != nil {
		return nil, findError(err, "training record", trainingID)
	}
	record := mapping.ToDomainTraining(m)
	return &record, nil
}

func (r *PgxTrainingRepository) queryTrainings(ctx context.Context, query string, args ...any) ([]domain.TrainingRecord, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query training records: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TrainingRecord])
	if err != nil {
		return nil, fmt.Errorf("failed to scan training rows: %w", err)
	}
	records := make([]domain.TrainingRecord, len(ms))
	for i, m := range ms {
		records[i] = mapping.ToDomainTraining(m)
	}
	return records, nil
}

func (r *PgxTrainingRepository) ListTrainings(ctx context.Context, tenantID, userID string, page portsrepo.Page) ([]domain.TrainingRecord, error) {
	var c conditions
	c.add("tenant_id = ?", tenantID)
	c.addIf("user_id = ?", userID)
	query := `SELECT ` + trainingColumns + ` FROM training_records` + c.where() +
		` ORDER BY due_date, training_id LIMIT ` + c.bind(page.Limit) + ` OFFSET ` + c.bind(page.Offset)
	return r.queryTrainings(ctx, query, c.args...)
}

func (r *PgxTrainingRepository) ListTrainingsDue(ctx context.Context, tenantID string, from, to time.Time) ([]domain.TrainingRecord, error) {
	return r.queryTrainings(ctx, `
		SELECT `+trainingColumns+`
		FROM training_records
		WHERE tenant_id = $1 AND due_date >= $2 AND due_date < $3
		ORDER BY due_date`,
		tenantID, from, to)
}

func (r *PgxTrainingRepository) SaveTraining(ctx context.Context, record domain.TrainingRecord) error {
	m := mapping.ToModelTraining(record)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO training_records (training_id, tenant_id, user_id, course_name, status, assigned_at, due_date,
		                              created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.TrainingID, m.TenantID, m.UserID, m.CourseName, m.Status, m.AssignedAt, m.DueDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return insertError(err, "training record", m.TrainingID)
	}
	return nil
}

// CompleteTraining only touches assigned records; completing twice is a no-op.
func (r *PgxTrainingRepository) CompleteTraining(ctx context.Context, trainingID, userID string, completedAt time.Time) error {
	_, err := r.Pool.Exec(ctx, `
		UPDATE training_records
		SET status = 'completed', completed_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE training_id = $3 AND status = 'assigned'`,
		completedAt, userID, trainingID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete training record %s: %w", trainingID, err)
	}
	return nil
}
