package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/access"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_safety_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/core/workflow"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/SscSPs/site_safety_app/internal/platform/events"
	"github.com/SscSPs/site_safety_app/internal/utils/compliance"
	"github.com/google/uuid"
)

type inspectionService struct {
	BaseService
	inspectionRepo portsrepo.InspectionRepositoryFacade
	templateRepo   portsrepo.TemplateReader
	siteRepo       portsrepo.SiteReader
	userRepo       portsrepo.UserReader
}

// NewInspectionService creates a new inspection service
func NewInspectionService(
	inspectionRepo portsrepo.InspectionRepositoryFacade,
	templateRepo portsrepo.TemplateReader,
	siteRepo portsrepo.SiteReader,
	userRepo portsrepo.UserReader,
	options ...ServiceOption,
) portssvc.InspectionSvcFacade {
	return &inspectionService{
		BaseService:    newBaseService(options...),
		inspectionRepo: inspectionRepo,
		templateRepo:   templateRepo,
		siteRepo:       siteRepo,
		userRepo:       userRepo,
	}
}

var _ portssvc.InspectionSvcFacade = (*inspectionService)(nil)

func (s *inspectionService) Instantiate(ctx context.Context, p domain.Principal, templateID string, req dto.InstantiateRequest) (*domain.Inspection, error) {
	tpl, err := s.templateRepo.FindTemplateByID(ctx, templateID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load inspection template", slog.String("template_id", templateID))
	}
	res := access.Resource{Kind: access.KindInspection, TenantID: tpl.TenantID, SiteID: req.SiteID}
	if err := s.Authorize(ctx, p, access.ActionCreate, res); err != nil {
		return nil, err
	}
	if !tpl.IsActive {
		return nil, apperrors.NewValidationFailedError("template is inactive")
	}
	if len(tpl.Items) == 0 {
		return nil, apperrors.NewValidationFailedError("template has no checklist items")
	}

	site, err := s.siteRepo.FindSiteByID(ctx, req.SiteID)
	if err != nil {
		return nil, s.repoError(ctx, notFoundAsValidation(err, "site not found"), "Failed to load site for inspection", slog.String("site_id", req.SiteID))
	}
	if site.TenantID != tpl.TenantID || !site.IsActive {
		return nil, apperrors.NewValidationFailedError("site not found")
	}
	assignee, err := s.userRepo.FindUserByID(ctx, req.AssigneeID)
	if err != nil {
		return nil, s.repoError(ctx, notFoundAsValidation(err, "assignee not found"), "Failed to load inspection assignee", slog.String("assignee_id", req.AssigneeID))
	}
	if assignee.TenantID != tpl.TenantID || !assignee.IsActive || assignee.DeletedAt != nil {
		return nil, apperrors.NewValidationFailedError("assignee not found")
	}

	now := s.Now()
	inspection := domain.Inspection{
		InspectionID:    uuid.NewString(),
		TenantID:        tpl.TenantID,
		SiteID:          site.SiteID,
		TemplateID:      tpl.TemplateID,
		TemplateVersion: tpl.Version,
		AssigneeID:      assignee.UserID,
		ScheduledDate:   req.ScheduledDate.UTC(),
		Location:        req.Location,
		Status:          domain.InspectionScheduled,
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(p.UserID, now),
		Versioned:       domain.Versioned{Version: 1},
	}
	if err := s.inspectionRepo.SaveInspection(ctx, inspection); err != nil {
		return nil, s.repoError(ctx, err, "Failed to save inspection", slog.String("template_id", templateID))
	}

	s.LogInfo(ctx, "Inspection scheduled",
		slog.String("inspection_id", inspection.InspectionID),
		slog.String("template_id", tpl.TemplateID),
		slog.Int("template_version", tpl.Version))
	s.publish(ctx, s.event(events.InspectionScheduled, p, inspection.TenantID, inspection.InspectionID, map[string]any{
		"site_id":        inspection.SiteID,
		"assignee_id":    inspection.AssigneeID,
		"scheduled_date": inspection.ScheduledDate,
	}))
	return &inspection, nil
}

func (s *inspectionService) loadInspection(ctx context.Context, p domain.Principal, inspectionID string, action access.Action, transition domain.InspectionStatus) (*domain.Inspection, error) {
	inspection, err := s.inspectionRepo.FindInspectionByID(ctx, inspectionID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load inspection", slog.String("inspection_id", inspectionID))
	}
	res := access.Resource{
		Kind:       access.KindInspection,
		ID:         inspection.InspectionID,
		TenantID:   inspection.TenantID,
		SiteID:     inspection.SiteID,
		Transition: string(transition),
	}
	if err := s.Authorize(ctx, p, action, res); err != nil {
		return nil, err
	}
	return inspection, nil
}

func (s *inspectionService) GetInspection(ctx context.Context, p domain.Principal, inspectionID string) (*domain.InspectionDetail, error) {
	inspection, err := s.loadInspection(ctx, p, inspectionID, access.ActionRead, "")
	if err != nil {
		return nil, err
	}
	items, err := s.templateRepo.FindChecklistItems(ctx, inspection.TemplateID, inspection.TemplateVersion)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load checklist items", slog.String("inspection_id", inspectionID))
	}
	responses, err := s.inspectionRepo.ListResponses(ctx, inspectionID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load inspection responses", slog.String("inspection_id", inspectionID))
	}
	findings, err := s.inspectionRepo.ListFindings(ctx, inspectionID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load inspection findings", slog.String("inspection_id", inspectionID))
	}
	return &domain.InspectionDetail{
		Inspection: *inspection,
		Items:      items,
		Responses:  responses,
		Findings:   findings,
	}, nil
}

func (s *inspectionService) ListInspections(ctx context.Context, p domain.Principal, params dto.ListInspectionsParams) ([]domain.Inspection, error) {
	res := access.Resource{Kind: access.KindInspection, TenantID: p.TenantID, SiteID: params.SiteID}
	if err := s.Authorize(ctx, p, access.ActionRead, res); err != nil {
		return nil, err
	}
	filter := domain.InspectionFilter{
		SiteID:     params.SiteID,
		Status:     domain.InspectionStatus(params.Status),
		AssigneeID: params.AssigneeID,
	}
	page := portsrepo.Page{Limit: params.Limit, Offset: params.Offset}.Normalize()
	inspections, err := s.inspectionRepo.ListInspections(ctx, p.TenantID, filter, page)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to list inspections", slog.String("tenant_id", p.TenantID))
	}
	return inspections, nil
}

// closedError reports why an inspection no longer accepts changes.
func closedError(inspection domain.Inspection) error {
	return apperrors.NewTerminalStateError(workflow.Inspection.Entity(), string(inspection.Status))
}

func (s *inspectionService) RecordResponse(ctx context.Context, p domain.Principal, inspectionID string, req dto.RecordResponseRequest) (*domain.InspectionResponse, *domain.Inspection, error) {
	inspection, err := s.loadInspection(ctx, p, inspectionID, access.ActionUpdate, "")
	if err != nil {
		return nil, nil, err
	}
	if !workflow.AcceptsResponses(inspection.Status) {
		return nil, nil, closedError(*inspection)
	}

	items, err := s.templateRepo.FindChecklistItems(ctx, inspection.TemplateID, inspection.TemplateVersion)
	if err != nil {
		return nil, nil, s.repoError(ctx, err, "Failed to load checklist items", slog.String("inspection_id", inspectionID))
	}
	known := false
	for _, item := range items {
		if item.ItemID == req.ItemID {
			known = true
			break
		}
	}
	if !known {
		return nil, nil, apperrors.NewValidationFailedError("item does not belong to this inspection's checklist").
			WithDetail("itemId", req.ItemID)
	}

	now := s.Now()
	response := domain.InspectionResponse{
		ResponseID:   uuid.NewString(),
		TenantID:     inspection.TenantID,
		InspectionID: inspectionID,
		ItemID:       req.ItemID,
		Answer:       req.Answer,
		Notes:        req.Notes,
		RespondedBy:  p.UserID,
		RespondedAt:  now,
	}
	stored, err := s.inspectionRepo.RecordResponse(ctx, response, now)
	if errors.Is(err, apperrors.ErrConcurrentModification) {
		// The inspection was completed or canceled in between.
		if fresh, ferr := s.inspectionRepo.FindInspectionByID(ctx, inspectionID); ferr == nil && !workflow.AcceptsResponses(fresh.Status) {
			return nil, nil, closedError(*fresh)
		}
		return nil, nil, err
	}
	if err != nil {
		return nil, nil, s.repoError(ctx, err, "Failed to record inspection response", slog.String("inspection_id", inspectionID))
	}

	if inspection.Status == domain.InspectionScheduled && stored.Status == domain.InspectionInProgress {
		s.recordTransition(workflow.Inspection.Entity(), string(domain.InspectionScheduled), string(domain.InspectionInProgress), nil)
	}
	return &response, stored, nil
}

// storedResult rebuilds the result of an already completed inspection.
func (s *inspectionService) storedResult(ctx context.Context, inspection domain.Inspection) (*domain.InspectionResult, error) {
	findings, err := s.inspectionRepo.ListFindings(ctx, inspection.InspectionID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load inspection findings", slog.String("inspection_id", inspection.InspectionID))
	}
	result := &domain.InspectionResult{Inspection: inspection, Findings: findings}
	if inspection.Score != nil {
		result.Score = *inspection.Score
	}
	return result, nil
}

func (s *inspectionService) Complete(ctx context.Context, p domain.Principal, inspectionID string) (*domain.InspectionResult, error) {
	inspection, err := s.loadInspection(ctx, p, inspectionID, access.ActionTransition, domain.InspectionCompleted)
	if err != nil {
		return nil, err
	}
	if inspection.Status == domain.InspectionCompleted {
		return s.storedResult(ctx, *inspection)
	}

	from := inspection.Status
	entity := workflow.Inspection.Entity()
	if err := workflow.Inspection.Check(from, domain.InspectionCompleted); err != nil {
		s.recordTransition(entity, string(from), string(domain.InspectionCompleted), err)
		return nil, err
	}

	items, err := s.templateRepo.FindChecklistItems(ctx, inspection.TemplateID, inspection.TemplateVersion)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load checklist items", slog.String("inspection_id", inspectionID))
	}
	responses, err := s.inspectionRepo.ListResponses(ctx, inspectionID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load inspection responses", slog.String("inspection_id", inspectionID))
	}
	if missing := compliance.MissingResponses(items, responses); len(missing) > 0 {
		err := apperrors.NewIncompleteChecklistError(missing)
		s.recordTransition(entity, string(from), string(domain.InspectionCompleted), err)
		return nil, err
	}

	now := s.Now()
	eval := compliance.Evaluate(items, responses)
	findings := s.buildFindings(ctx, *inspection, eval.Failures, responses, p.UserID)

	expected := inspection.Version
	workflow.ApplyInspectionTransition(inspection, domain.InspectionCompleted, p.UserID, now)
	score := eval.Score
	inspection.Score = &score

	err = s.inspectionRepo.CompleteInspection(ctx, *inspection, findings, from, expected)
	s.recordTransition(entity, string(from), string(domain.InspectionCompleted), err)
	if errors.Is(err, apperrors.ErrConcurrentModification) {
		fresh, ferr := s.inspectionRepo.FindInspectionByID(ctx, inspectionID)
		if ferr == nil && fresh.Status == domain.InspectionCompleted {
			return s.storedResult(ctx, *fresh)
		}
		return nil, err
	}
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to complete inspection", slog.String("inspection_id", inspectionID))
	}
	inspection.Version = expected + 1

	s.LogInfo(ctx, "Inspection completed",
		slog.String("inspection_id", inspectionID),
		slog.String("score", score.String()),
		slog.Int("findings", len(findings)))
	s.publish(ctx, s.event(events.InspectionCompleted, p, inspection.TenantID, inspectionID, map[string]any{
		"score":    score.String(),
		"findings": len(findings),
	}))
	for _, f := range findings {
		s.publish(ctx, s.event(events.FindingRaised, p, f.TenantID, f.FindingID, map[string]any{
			"inspection_id": inspectionID,
			"item_id":       f.ItemID,
			"severity":      f.Severity,
		}))
	}
	return &domain.InspectionResult{Inspection: *inspection, Score: score, Findings: findings}, nil
}

// buildFindings raises one critical finding per failed critical item.
func (s *inspectionService) buildFindings(ctx context.Context, inspection domain.Inspection, failures []domain.ChecklistItem, responses []domain.InspectionResponse, actorID string) []domain.InspectionFinding {
	findings := make([]domain.InspectionFinding, 0, len(failures))
	if len(failures) == 0 {
		return findings
	}

	location := inspection.Location
	if location == "" {
		if site, err := s.siteRepo.FindSiteByID(ctx, inspection.SiteID); err == nil {
			location = site.Name
		}
	}
	answers := make(map[string]string, len(responses))
	for _, r := range responses {
		answers[r.ItemID] = r.Answer
	}

	now := s.Now()
	for _, item := range failures {
		action := item.RecommendedAction
		if action == "" {
			action = fmt.Sprintf("Correct the non-compliance and re-check: %s", item.Question)
		}
		findings = append(findings, domain.InspectionFinding{
			FindingID:         uuid.NewString(),
			TenantID:          inspection.TenantID,
			InspectionID:      inspection.InspectionID,
			ItemID:            item.ItemID,
			Severity:          domain.FindingCritical,
			Location:          location,
			Description:       fmt.Sprintf("%s: expected %q, answered %q", item.Question, item.ExpectedAnswer, answers[item.ItemID]),
			RecommendedAction: action,
			Status:            domain.FindingOpen,
			AuditFields:       domain.NewAuditFields(actorID, now),
		})
	}
	return findings
}

func (s *inspectionService) Cancel(ctx context.Context, p domain.Principal, inspectionID string) (*domain.Inspection, error) {
	inspection, err := s.loadInspection(ctx, p, inspectionID, access.ActionTransition, domain.InspectionCanceled)
	if err != nil {
		return nil, err
	}
	from := inspection.Status
	entity := workflow.Inspection.Entity()
	if err := workflow.Inspection.Check(from, domain.InspectionCanceled); err != nil {
		s.recordTransition(entity, string(from), string(domain.InspectionCanceled), err)
		return nil, err
	}

	expected := inspection.Version
	workflow.ApplyInspectionTransition(inspection, domain.InspectionCanceled, p.UserID, s.Now())
	err = s.inspectionRepo.TransitionInspection(ctx, *inspection, from, expected)
	s.recordTransition(entity, string(from), string(domain.InspectionCanceled), err)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to cancel inspection", slog.String("inspection_id", inspectionID))
	}
	inspection.Version = expected + 1

	s.publish(ctx, s.event(events.InspectionCanceled, p, inspection.TenantID, inspectionID, nil))
	return inspection, nil
}

func (s *inspectionService) ListFindings(ctx context.Context, p domain.Principal, params dto.ListFindingsParams) ([]domain.InspectionFinding, error) {
	if err := s.Authorize(ctx, p, access.ActionRead, access.Resource{Kind: access.KindFinding, TenantID: p.TenantID}); err != nil {
		return nil, err
	}
	page := portsrepo.Page{Limit: params.Limit, Offset: params.Offset}.Normalize()
	findings, err := s.inspectionRepo.ListTenantFindings(ctx, p.TenantID, domain.FindingStatus(params.Status), page)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to list findings", slog.String("tenant_id", p.TenantID))
	}
	return findings, nil
}

func (s *inspectionService) UpdateFinding(ctx context.Context, p domain.Principal, findingID string, req dto.UpdateFindingRequest) (*domain.InspectionFinding, error) {
	finding, err := s.inspectionRepo.FindFindingByID(ctx, findingID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load finding", slog.String("finding_id", findingID))
	}
	res := access.Resource{Kind: access.KindFinding, ID: finding.FindingID, TenantID: finding.TenantID, Transition: string(req.Status)}
	if err := s.Authorize(ctx, p, access.ActionTransition, res); err != nil {
		return nil, err
	}

	from := finding.Status
	entity := workflow.FindingMachine.Entity()
	if err := workflow.FindingMachine.Check(from, req.Status); err != nil {
		s.recordTransition(entity, string(from), string(req.Status), err)
		return nil, err
	}
	finding.Status = req.Status
	finding.Touch(p.UserID, s.Now())
	err = s.inspectionRepo.UpdateFindingStatus(ctx, *finding, from)
	s.recordTransition(entity, string(from), string(req.Status), err)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to update finding", slog.String("finding_id", findingID))
	}

	s.publish(ctx, s.event(events.FindingStatusChanged, p, finding.TenantID, findingID, map[string]any{
		"from": from,
		"to":   finding.Status,
	}))
	return finding, nil
}
