package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// TemplateReader defines read operations for inspection templates
type TemplateReader interface {
	// FindTemplateByID retrieves a template with the items of its current version.
	FindTemplateByID(ctx context.Context, templateID string) (*domain.InspectionTemplate, error)

	// ListTemplates retrieves a tenant's active templates without items.
	ListTemplates(ctx context.Context, tenantID string, page Page) ([]domain.InspectionTemplate, error)

	// FindChecklistItems retrieves the items of one template version in position order.
	FindChecklistItems(ctx context.Context, templateID string, version int) ([]domain.ChecklistItem, error)
}

// TemplateWriter defines write operations for inspection templates.
// Checklist items are append-only: a new version writes a new item set.
type TemplateWriter interface {
	// SaveTemplate persists a template and its first item set.
	SaveTemplate(ctx context.Context, template domain.InspectionTemplate, items []domain.ChecklistItem) error

	// SaveTemplateVersion writes a new item set and bumps the template from
	// previousVersion to template.Version. Fails with ErrConcurrentModification
	// if another edit got there first.
	SaveTemplateVersion(ctx context.Context, template domain.InspectionTemplate, items []domain.ChecklistItem, previousVersion int) error

	// DeactivateTemplate soft-deletes a template.
	DeactivateTemplate(ctx context.Context, templateID, userID string, now time.Time) error
}

// TemplateRepositoryFacade combines all template-related repository interfaces
type TemplateRepositoryFacade interface {
	TemplateReader
	TemplateWriter
}
