package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/access"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_safety_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/google/uuid"
)

type templateService struct {
	BaseService
	templateRepo portsrepo.TemplateRepositoryFacade
}

// NewTemplateService creates a new inspection template service
func NewTemplateService(templateRepo portsrepo.TemplateRepositoryFacade, options ...ServiceOption) portssvc.TemplateSvcFacade {
	return &templateService{
		BaseService:  newBaseService(options...),
		templateRepo: templateRepo,
	}
}

var _ portssvc.TemplateSvcFacade = (*templateService)(nil)

func templateResource(tpl domain.InspectionTemplate) access.Resource {
	return access.Resource{Kind: access.KindTemplate, ID: tpl.TemplateID, TenantID: tpl.TenantID}
}

// buildItems turns the requested items into the immutable item set of one version.
func buildItems(tpl domain.InspectionTemplate, reqs []dto.ChecklistItemRequest) ([]domain.ChecklistItem, error) {
	if len(reqs) == 0 {
		return nil, apperrors.NewValidationFailedError("a template needs at least one checklist item")
	}
	items := make([]domain.ChecklistItem, 0, len(reqs))
	for i, r := range reqs {
		if strings.TrimSpace(r.Question) == "" || strings.TrimSpace(r.ExpectedAnswer) == "" {
			return nil, apperrors.NewValidationFailedError("every checklist item needs a question and an expected answer").
				WithDetail("position", i+1)
		}
		items = append(items, domain.ChecklistItem{
			ItemID:            uuid.NewString(),
			TenantID:          tpl.TenantID,
			TemplateID:        tpl.TemplateID,
			TemplateVersion:   tpl.Version,
			Position:          i + 1,
			Category:          r.Category,
			Question:          strings.TrimSpace(r.Question),
			IsCritical:        r.IsCritical,
			ExpectedAnswer:    strings.TrimSpace(r.ExpectedAnswer),
			RecommendedAction: r.RecommendedAction,
		})
	}
	return items, nil
}

func (s *templateService) CreateTemplate(ctx context.Context, p domain.Principal, req dto.CreateTemplateRequest) (*domain.InspectionTemplate, error) {
	if err := s.Authorize(ctx, p, access.ActionCreate, access.Resource{Kind: access.KindTemplate, TenantID: p.TenantID}); err != nil {
		return nil, err
	}

	tpl := domain.InspectionTemplate{
		TemplateID:  uuid.NewString(),
		TenantID:    p.TenantID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    req.Category,
		Version:     1,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(p.UserID, s.Now()),
	}
	items, err := buildItems(tpl, req.Items)
	if err != nil {
		return nil, err
	}
	if err := s.templateRepo.SaveTemplate(ctx, tpl, items); err != nil {
		return nil, s.repoError(ctx, err, "Failed to save inspection template", slog.String("template_name", tpl.Name))
	}
	tpl.Items = items

	s.LogInfo(ctx, "Inspection template created",
		slog.String("template_id", tpl.TemplateID),
		slog.Int("items", len(items)))
	return &tpl, nil
}

func (s *templateService) loadTemplate(ctx context.Context, p domain.Principal, templateID string, action access.Action) (*domain.InspectionTemplate, error) {
	tpl, err := s.templateRepo.FindTemplateByID(ctx, templateID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load inspection template", slog.String("template_id", templateID))
	}
	if err := s.Authorize(ctx, p, action, templateResource(*tpl)); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *templateService) GetTemplate(ctx context.Context, p domain.Principal, templateID string) (*domain.InspectionTemplate, error) {
	return s.loadTemplate(ctx, p, templateID, access.ActionRead)
}

func (s *templateService) ListTemplates(ctx context.Context, p domain.Principal, params dto.ListParams) ([]domain.InspectionTemplate, error) {
	if err := s.Authorize(ctx, p, access.ActionRead, access.Resource{Kind: access.KindTemplate, TenantID: p.TenantID}); err != nil {
		return nil, err
	}
	page := portsrepo.Page{Limit: params.Limit, Offset: params.Offset}.Normalize()
	templates, err := s.templateRepo.ListTemplates(ctx, p.TenantID, page)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to list inspection templates", slog.String("tenant_id", p.TenantID))
	}
	return templates, nil
}

func (s *templateService) UpdateTemplate(ctx context.Context, p domain.Principal, templateID string, req dto.UpdateTemplateRequest) (*domain.InspectionTemplate, error) {
	tpl, err := s.loadTemplate(ctx, p, templateID, access.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if !tpl.IsActive {
		return nil, apperrors.NewValidationFailedError("template is inactive")
	}

	previous := tpl.Version
	tpl.Version = previous + 1
	if req.Name != nil {
		tpl.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		tpl.Description = *req.Description
	}
	if req.Category != nil {
		tpl.Category = *req.Category
	}
	tpl.Touch(p.UserID, s.Now())

	items, err := buildItems(*tpl, req.Items)
	if err != nil {
		return nil, err
	}
	if err := s.templateRepo.SaveTemplateVersion(ctx, *tpl, items, previous); err != nil {
		return nil, s.repoError(ctx, err, "Failed to save template version", slog.String("template_id", templateID))
	}
	tpl.Items = items

	s.LogInfo(ctx, "Inspection template versioned",
		slog.String("template_id", templateID),
		slog.Int("version", tpl.Version))
	return tpl, nil
}

func (s *templateService) DeleteTemplate(ctx context.Context, p domain.Principal, templateID string) error {
	if _, err := s.loadTemplate(ctx, p, templateID, access.ActionDelete); err != nil {
		return err
	}
	if err := s.templateRepo.DeactivateTemplate(ctx, templateID, p.UserID, s.Now()); err != nil {
		return s.repoError(ctx, err, "Failed to deactivate template", slog.String("template_id", templateID))
	}
	return nil
}
