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
	"github.com/SscSPs/site_safety_app/internal/core/workflow"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/SscSPs/site_safety_app/internal/platform/events"
	"github.com/google/uuid"
)

type incidentService struct {
	BaseService
	incidentRepo portsrepo.IncidentRepositoryFacade
	siteRepo     portsrepo.SiteReader
}

// NewIncidentService creates a new incident service
func NewIncidentService(incidentRepo portsrepo.IncidentRepositoryFacade, siteRepo portsrepo.SiteReader, options ...ServiceOption) portssvc.IncidentSvcFacade {
	return &incidentService{
		BaseService:  newBaseService(options...),
		incidentRepo: incidentRepo,
		siteRepo:     siteRepo,
	}
}

var _ portssvc.IncidentSvcFacade = (*incidentService)(nil)

func (s *incidentService) CreateIncident(ctx context.Context, p domain.Principal, req dto.CreateIncidentRequest) (*domain.IncidentReport, error) {
	site, err := s.siteRepo.FindSiteByID(ctx, req.SiteID)
	if err != nil {
		return nil, s.repoError(ctx, notFoundAsValidation(err, "site not found"), "Failed to load site for incident", slog.String("site_id", req.SiteID))
	}
	res := access.Resource{Kind: access.KindIncident, TenantID: site.TenantID, SiteID: site.SiteID}
	if err := s.Authorize(ctx, p, access.ActionCreate, res); err != nil {
		return nil, err
	}

	now := s.Now()
	if req.OccurredAt.After(now) {
		return nil, apperrors.NewValidationFailedError("occurredAt cannot be in the future")
	}
	involved := req.InvolvedUserIDs
	if involved == nil {
		involved = []string{}
	}

	incident := domain.IncidentReport{
		IncidentID:      uuid.NewString(),
		TenantID:        site.TenantID,
		SiteID:          site.SiteID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Severity:        req.Severity,
		Status:          domain.IncidentReported,
		OccurredAt:      req.OccurredAt.UTC(),
		ReportedBy:      p.UserID,
		InvolvedUserIDs: involved,
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(p.UserID, now),
		Versioned:       domain.Versioned{Version: 1},
	}
	if err := s.incidentRepo.SaveIncident(ctx, incident); err != nil {
		return nil, s.repoError(ctx, err, "Failed to save incident", slog.String("site_id", site.SiteID))
	}

	s.LogInfo(ctx, "Incident reported",
		slog.String("incident_id", incident.IncidentID),
		slog.String("severity", string(incident.Severity)))
	s.publish(ctx, s.event(events.IncidentReported, p, incident.TenantID, incident.IncidentID, map[string]any{
		"site_id":  incident.SiteID,
		"severity": incident.Severity,
	}))
	return &incident, nil
}

func (s *incidentService) loadIncident(ctx context.Context, p domain.Principal, incidentID string, action access.Action, transition domain.IncidentStatus) (*domain.IncidentReport, error) {
	incident, err := s.incidentRepo.FindIncidentByID(ctx, incidentID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load incident", slog.String("incident_id", incidentID))
	}
	res := access.Resource{
		Kind:       access.KindIncident,
		ID:         incident.IncidentID,
		TenantID:   incident.TenantID,
		SiteID:     incident.SiteID,
		Transition: string(transition),
	}
	if err := s.Authorize(ctx, p, action, res); err != nil {
		return nil, err
	}
	return incident, nil
}

func (s *incidentService) GetIncident(ctx context.Context, p domain.Principal, incidentID string) (*domain.IncidentReport, error) {
	return s.loadIncident(ctx, p, incidentID, access.ActionRead, "")
}

func (s *incidentService) ListIncidents(ctx context.Context, p domain.Principal, params dto.ListIncidentsParams) ([]domain.IncidentReport, error) {
	res := access.Resource{Kind: access.KindIncident, TenantID: p.TenantID, SiteID: params.SiteID}
	if err := s.Authorize(ctx, p, access.ActionRead, res); err != nil {
		return nil, err
	}
	filter := domain.IncidentFilter{
		SiteID:   params.SiteID,
		Status:   domain.IncidentStatus(params.Status),
		Severity: domain.IncidentSeverity(params.Severity),
	}
	page := portsrepo.Page{Limit: params.Limit, Offset: params.Offset}.Normalize()
	incidents, err := s.incidentRepo.ListIncidents(ctx, p.TenantID, filter, page)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to list incidents", slog.String("tenant_id", p.TenantID))
	}
	return incidents, nil
}

func (s *incidentService) TransitionIncident(ctx context.Context, p domain.Principal, incidentID string, req dto.TransitionIncidentRequest) (*domain.IncidentReport, error) {
	incident, err := s.loadIncident(ctx, p, incidentID, access.ActionTransition, req.Status)
	if err != nil {
		return nil, err
	}
	from := incident.Status
	entity := workflow.Incident.Entity()
	resolution := domain.IncidentResolution{
		RootCause:            req.RootCause,
		CorrectiveActions:    req.CorrectiveActions,
		PreventativeMeasures: req.PreventativeMeasures,
	}

	if err := workflow.CheckIncidentTransition(from, req.Status, resolution); err != nil {
		s.recordTransition(entity, string(from), string(req.Status), err)
		return nil, err
	}

	expected := incident.Version
	workflow.ApplyIncidentTransition(incident, req.Status, resolution, p.UserID, s.Now())
	err = s.incidentRepo.TransitionIncident(ctx, *incident, from, expected)
	s.recordTransition(entity, string(from), string(req.Status), err)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to transition incident", slog.String("incident_id", incidentID))
	}
	incident.Version = expected + 1

	s.LogInfo(ctx, "Incident transitioned",
		slog.String("incident_id", incidentID),
		slog.String("from", string(from)),
		slog.String("to", string(incident.Status)))
	s.publish(ctx, s.event(events.IncidentTransitioned, p, incident.TenantID, incidentID, map[string]any{
		"from": from,
		"to":   incident.Status,
	}))
	return incident, nil
}
