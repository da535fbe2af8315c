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
	"github.com/SscSPs/site_safety_app/internal/core/scheduling"
	"github.com/SscSPs/site_safety_app/internal/core/workflow"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/SscSPs/site_safety_app/internal/platform/events"
	"github.com/google/uuid"
)

// hazardService implements the HazardSvcFacade interface
type hazardService struct {
	BaseService
	hazardRepo portsrepo.HazardRepositoryFacade
	siteRepo   portsrepo.SiteReader
	userRepo   portsrepo.UserReader
}

// NewHazardService creates a new hazard service with the provided options
func NewHazardService(hazardRepo portsrepo.HazardRepositoryFacade, siteRepo portsrepo.SiteReader, userRepo portsrepo.UserReader, options ...ServiceOption) portssvc.HazardSvcFacade {
	return &hazardService{
		BaseService: newBaseService(options...),
		hazardRepo:  hazardRepo,
		siteRepo:    siteRepo,
		userRepo:    userRepo,
	}
}

var _ portssvc.HazardSvcFacade = (*hazardService)(nil)

func hazardResource(h domain.HazardReport, transition domain.HazardStatus) access.Resource {
	return access.Resource{
		Kind:       access.KindHazard,
		ID:         h.HazardID,
		TenantID:   h.TenantID,
		SiteID:     h.SiteID,
		Transition: string(transition),
	}
}

func (s *hazardService) CreateHazard(ctx context.Context, p domain.Principal, req dto.CreateHazardRequest) (*domain.HazardWithAssignment, error) {
	site, err := s.siteRepo.FindSiteByID(ctx, req.SiteID)
	if err != nil {
		return nil, s.repoError(ctx, notFoundAsValidation(err, "site not found"), "Failed to load site for hazard", slog.String("site_id", req.SiteID))
	}
	res := access.Resource{Kind: access.KindHazard, TenantID: site.TenantID, SiteID: site.SiteID}
	if err := s.Authorize(ctx, p, access.ActionCreate, res); err != nil {
		return nil, err
	}
	if !site.IsActive {
		return nil, apperrors.NewValidationFailedError("site is inactive")
	}

	now := s.Now()
	hazard := domain.HazardReport{
		HazardID:    uuid.NewString(),
		TenantID:    site.TenantID,
		SiteID:      site.SiteID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Location:    req.Location,
		Severity:    req.Severity,
		Status:      domain.HazardOpen,
		ReportedBy:  p.UserID,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(p.UserID, now),
		Versioned:   domain.Versioned{Version: 1},
	}
	if err := s.hazardRepo.SaveHazard(ctx, hazard); err != nil {
		return nil, s.repoError(ctx, err, "Failed to save hazard", slog.String("site_id", site.SiteID))
	}

	s.LogInfo(ctx, "Hazard reported",
		slog.String("hazard_id", hazard.HazardID),
		slog.String("site_id", hazard.SiteID),
		slog.String("severity", string(hazard.Severity)))
	s.publish(ctx, s.event(events.HazardCreated, p, hazard.TenantID, hazard.HazardID, map[string]any{
		"site_id":  hazard.SiteID,
		"severity": hazard.Severity,
	}))
	return &domain.HazardWithAssignment{Hazard: hazard}, nil
}

// loadHazard fetches a hazard and runs the guard for action on it.
func (s *hazardService) loadHazard(ctx context.Context, p domain.Principal, hazardID string, action access.Action, transition domain.HazardStatus) (*domain.HazardWithAssignment, error) {
	hw, err := s.hazardRepo.FindHazardByID(ctx, hazardID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load hazard", slog.String("hazard_id", hazardID))
	}
	if err := s.Authorize(ctx, p, action, hazardResource(hw.Hazard, transition)); err != nil {
		return nil, err
	}
	return hw, nil
}

func (s *hazardService) GetHazard(ctx context.Context, p domain.Principal, hazardID string) (*domain.HazardWithAssignment, error) {
	return s.loadHazard(ctx, p, hazardID, access.ActionRead, "")
}

func (s *hazardService) ListHazards(ctx context.Context, p domain.Principal, params dto.ListHazardsParams) ([]domain.HazardWithAssignment, *string, error) {
	res := access.Resource{Kind: access.KindHazard, TenantID: p.TenantID, SiteID: params.SiteID}
	if err := s.Authorize(ctx, p, access.ActionRead, res); err != nil {
		return nil, nil, err
	}

	filter := domain.HazardFilter{
		SiteID:     params.SiteID,
		Status:     domain.HazardStatus(params.Status),
		Severity:   domain.HazardSeverity(params.Severity),
		AssigneeID: params.AssigneeID,
	}
	limit := portsrepo.Page{Limit: params.Limit}.Normalize().Limit
	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	hazards, next, err := s.hazardRepo.ListHazards(ctx, p.TenantID, filter, limit, nextToken)
	if err != nil {
		return nil, nil, s.repoError(ctx, err, "Failed to list hazards", slog.String("tenant_id", p.TenantID))
	}
	return hazards, next, nil
}

func (s *hazardService) ListOverdueHazards(ctx context.Context, p domain.Principal) ([]domain.HazardWithAssignment, error) {
	res := access.Resource{Kind: access.KindHazard, TenantID: p.TenantID}
	if err := s.Authorize(ctx, p, access.ActionRead, res); err != nil {
		return nil, err
	}
	hazards, err := s.hazardRepo.ListOverdueHazards(ctx, p.TenantID, s.Now())
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to list overdue hazards", slog.String("tenant_id", p.TenantID))
	}
	return hazards, nil
}

func (s *hazardService) IsOverdue(h domain.HazardWithAssignment) bool {
	if h.Assignment == nil {
		return false
	}
	return scheduling.IsOverdue(h.Assignment.DueDate, h.Hazard.Status, s.Now())
}

func (s *hazardService) UpdateHazard(ctx context.Context, p domain.Principal, hazardID string, req dto.UpdateHazardRequest) (*domain.HazardWithAssignment, error) {
	hw, err := s.loadHazard(ctx, p, hazardID, access.ActionUpdate, "")
	if err != nil {
		return nil, err
	}
	hazard := hw.Hazard
	if workflow.Hazard.IsTerminal(hazard.Status) {
		return nil, apperrors.NewTerminalStateError(workflow.Hazard.Entity(), string(hazard.Status))
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperrors.NewValidationFailedError("title cannot be empty")
		}
		hazard.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		hazard.Description = *req.Description
	}
	if req.Location != nil {
		hazard.Location = *req.Location
	}
	if req.Severity != nil {
		hazard.Severity = *req.Severity
	}
	hazard.Touch(p.UserID, s.Now())

	expected := hazard.Version
	if err := s.hazardRepo.UpdateHazardDetails(ctx, hazard, expected); err != nil {
		return nil, s.repoError(ctx, err, "Failed to update hazard", slog.String("hazard_id", hazardID))
	}
	hazard.Version = expected + 1
	hw.Hazard = hazard
	return hw, nil
}

func (s *hazardService) AssignHazard(ctx context.Context, p domain.Principal, hazardID string, req dto.AssignHazardRequest) (*domain.HazardWithAssignment, error) {
	target := domain.HazardAssigned
	if req.Start {
		target = domain.HazardInProgress
	}
	hw, err := s.loadHazard(ctx, p, hazardID, access.ActionTransition, target)
	if err != nil {
		return nil, err
	}
	return s.assign(ctx, p, hw, req.AssigneeID, target)
}

// assign creates the hazard's assignment and moves it to target in one write.
// The due date is derived from the severity at this moment and never recomputed.
func (s *hazardService) assign(ctx context.Context, p domain.Principal, hw *domain.HazardWithAssignment, assigneeID string, target domain.HazardStatus) (*domain.HazardWithAssignment, error) {
	hazard := hw.Hazard
	from := hazard.Status
	entity := workflow.Hazard.Entity()

	if workflow.Hazard.IsTerminal(from) {
		err := apperrors.NewTerminalStateError(entity, string(from))
		s.recordTransition(entity, string(from), string(target), err)
		return nil, err
	}
	if hw.Assignment != nil {
		err := apperrors.NewAlreadyAssignedError(hazard.HazardID)
		s.recordTransition(entity, string(from), string(target), err)
		return nil, err
	}
	if err := workflow.CheckHazardTransition(from, target, assigneeID != ""); err != nil {
		s.recordTransition(entity, string(from), string(target), err)
		return nil, err
	}

	assignee, err := s.userRepo.FindUserByID(ctx, assigneeID)
	if err != nil {
		return nil, s.repoError(ctx, notFoundAsValidation(err, "assignee not found"), "Failed to load assignee", slog.String("assignee_id", assigneeID))
	}
	if assignee.TenantID != hazard.TenantID || !assignee.IsActive || assignee.DeletedAt != nil {
		return nil, apperrors.NewValidationFailedError("assignee not found")
	}

	now := s.Now()
	assignment := domain.HazardAssignment{
		AssignmentID: uuid.NewString(),
		TenantID:     hazard.TenantID,
		HazardID:     hazard.HazardID,
		AssigneeID:   assignee.UserID,
		AssignerID:   p.UserID,
		AssignedAt:   now,
		DueDate:      scheduling.ComputeDueDate(hazard.Severity, now),
		Status:       target,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(p.UserID, now),
	}

	expected := hazard.Version
	workflow.ApplyHazardTransition(&hazard, target, p.UserID, now)
	err = s.hazardRepo.CreateAssignment(ctx, hazard, assignment, from, expected)
	s.recordTransition(entity, string(from), string(target), err)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to create hazard assignment", slog.String("hazard_id", hazard.HazardID))
	}
	hazard.Version = expected + 1

	s.LogInfo(ctx, "Hazard assigned",
		slog.String("hazard_id", hazard.HazardID),
		slog.String("assignee_id", assignment.AssigneeID),
		slog.Time("due_date", assignment.DueDate))
	s.publish(ctx, s.event(events.HazardAssigned, p, hazard.TenantID, hazard.HazardID, map[string]any{
		"assignee_id": assignment.AssigneeID,
		"due_date":    assignment.DueDate,
		"status":      hazard.Status,
	}))
	return &domain.HazardWithAssignment{Hazard: hazard, Assignment: &assignment}, nil
}

func (s *hazardService) TransitionHazard(ctx context.Context, p domain.Principal, hazardID string, req dto.TransitionHazardRequest) (*domain.HazardWithAssignment, error) {
	hw, err := s.loadHazard(ctx, p, hazardID, access.ActionTransition, req.Status)
	if err != nil {
		return nil, err
	}
	hazard := hw.Hazard
	from := hazard.Status
	entity := workflow.Hazard.Entity()

	// Leaving open with an assignee is the assign operation under another route.
	if from == domain.HazardOpen && req.AssigneeID != "" {
		return s.assign(ctx, p, hw, req.AssigneeID, req.Status)
	}

	if err := workflow.CheckHazardTransition(from, req.Status, hw.Assignment != nil); err != nil {
		s.recordTransition(entity, string(from), string(req.Status), err)
		return nil, err
	}

	expected := hazard.Version
	workflow.ApplyHazardTransition(&hazard, req.Status, p.UserID, s.Now())
	err = s.hazardRepo.TransitionHazard(ctx, hazard, from, expected)
	s.recordTransition(entity, string(from), string(req.Status), err)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to transition hazard", slog.String("hazard_id", hazardID))
	}
	hazard.Version = expected + 1
	hw.Hazard = hazard
	if hw.Assignment != nil {
		hw.Assignment.Status = hazard.Status
	}

	s.LogInfo(ctx, "Hazard transitioned",
		slog.String("hazard_id", hazardID),
		slog.String("from", string(from)),
		slog.String("to", string(hazard.Status)))
	s.publish(ctx, s.event(events.HazardTransitioned, p, hazard.TenantID, hazardID, map[string]any{
		"from": from,
		"to":   hazard.Status,
	}))
	return hw, nil
}

func (s *hazardService) AddComment(ctx context.Context, p domain.Principal, hazardID string, req dto.AddCommentRequest) (*domain.HazardComment, error) {
	hw, err := s.loadHazard(ctx, p, hazardID, access.ActionCreate, "")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, apperrors.NewValidationFailedError("comment body cannot be empty")
	}
	comment := domain.HazardComment{
		CommentID: uuid.NewString(),
		TenantID:  hw.Hazard.TenantID,
		HazardID:  hazardID,
		AuthorID:  p.UserID,
		Body:      req.Body,
		CreatedAt: s.Now(),
	}
	if err := s.hazardRepo.SaveComment(ctx, comment); err != nil {
		return nil, s.repoError(ctx, err, "Failed to save hazard comment", slog.String("hazard_id", hazardID))
	}
	return &comment, nil
}

func (s *hazardService) ListComments(ctx context.Context, p domain.Principal, hazardID string) ([]domain.HazardComment, error) {
	if _, err := s.loadHazard(ctx, p, hazardID, access.ActionRead, ""); err != nil {
		return nil, err
	}
	comments, err := s.hazardRepo.ListComments(ctx, hazardID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to list hazard comments", slog.String("hazard_id", hazardID))
	}
	return comments, nil
}
