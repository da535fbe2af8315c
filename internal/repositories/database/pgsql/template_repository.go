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

const (
	templateColumns = `template_id, tenant_id, name, description, category, version, is_active,
	created_at, created_by, last_updated_at, last_updated_by`
	checklistItemColumns = `item_id, tenant_id, template_id, template_version, position, category, question,
	is_critical, expected_answer, recommended_action`
)

type PgxTemplateRepository struct {
	BaseRepository
}

func newPgxTemplateRepository(db *pgxpool.Pool) portsrepo.TemplateRepositoryFacade {
	return &PgxTemplateRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.TemplateRepositoryFacade = (*PgxTemplateRepository)(nil)

func (r *PgxTemplateRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.InspectionTemplate, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+templateColumns+` FROM inspection_templates WHERE template_id = $1`, templateID)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.InspectionTemplate])
	if err != nil {
		return nil, findError(err, "template", templateID)
	}
	tpl := mapping.ToDomainTemplate(m)
	if tpl.Items, err = r.FindChecklistItems(ctx, templateID, tpl.Version); err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *PgxTemplateRepository) ListTemplates(ctx context.Context, tenantID string, page portsrepo.Page) ([]domain.InspectionTemplate, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+templateColumns+`
		FROM inspection_templates
		WHERE tenant_id = $1 AND is_active
		ORDER BY name, template_id
		LIMIT $2 OFFSET $3`,
		tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.InspectionTemplate])
	if err != nil {
		return nil, fmt.Errorf("failed to scan template rows: %w", err)
	}
	templates := make([]domain.InspectionTemplate, len(ms))
	for i, m := range ms {
		templates[i] = mapping.ToDomainTemplate(m)
	}
	return templates, nil
}

func (r *PgxTemplateRepository) FindChecklistItems(ctx context.Context, templateID string, version int) ([]domain.ChecklistItem, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+checklistItemColumns+`
		FROM checklist_items
		WHERE template_id = $1 AND template_version = $2
		ORDER BY position`,
		templateID, version)
	if err != nil {
		return nil, fmt.Errorf("failed to query checklist items of template %s: %w", templateID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ChecklistItem])
	if err != nil {
		return nil, fmt.Errorf("failed to scan checklist item rows: %w", err)
	}
	items := make([]domain.ChecklistItem, len(ms))
	for i, m := range ms {
		items[i] = mapping.ToDomainChecklistItem(m)
	}
	return items, nil
}

// copyItems bulk-loads one item set with COPY.
func copyItems(ctx context.Context, tx pgx.Tx, items []domain.ChecklistItem) error {
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"checklist_items"},
		[]string{"item_id", "tenant_id", "template_id", "template_version", "position", "category", "question",
			"is_critical", "expected_answer", "recommended_action"},
		pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
			m := mapping.ToModelChecklistItem(items[i])
			return []any{m.ItemID, m.TenantID, m.TemplateID, m.TemplateVersion, m.Position, m.Category, m.Question,
				m.IsCritical, m.ExpectedAnswer, m.RecommendedAction}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to copy checklist items: %w", err)
	}
	return nil
}

func (r *PgxTemplateRepository) SaveTemplate(ctx context.Context, template domain.InspectionTemplate, items []domain.ChecklistItem) error {
	m := mapping.ToModelTemplate(template)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO inspection_templates (template_id, tenant_id, name, description, category, version, is_active,
			                                  created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			m.TemplateID, m.TenantID, m.Name, m.Description, m.Category, m.Version, m.IsActive,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return insertError(err, "template", m.TemplateID)
		}
		return copyItems(ctx, tx, items)
	})
}

func (r *PgxTemplateRepository) SaveTemplateVersion(ctx context.Context, template domain.InspectionTemplate, items []domain.ChecklistItem, previousVersion int) error {
	m := mapping.ToModelTemplate(template)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE inspection_templates
			SET name = $1, description = $2, category = $3, version = $4,
			    last_updated_at = $5, last_updated_by = $6
			WHERE template_id = $7 AND version = $8 AND is_active`,
			m.Name, m.Description, m.Category, m.Version, m.LastUpdatedAt, m.LastUpdatedBy,
			m.TemplateID, previousVersion,
		)
		if err != nil {
			return fmt.Errorf("failed to update template %s: %w", m.TemplateID, err)
		}
		if err := expectSwapped(tag, "template", m.TemplateID); err != nil {
			return err
		}
		return copyItems(ctx, tx, items)
	})
}

func (r *PgxTemplateRepository) DeactivateTemplate(ctx context.Context, templateID, userID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE inspection_templates SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE template_id = $3 AND is_active`,
		now, userID, templateID,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate template %s: %w", templateID, err)
	}
	return expectOneRow(tag, "template", templateID)
}
