package services

import (
	"context"
	"errors"
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

type permitService struct {
	BaseService
	permitRepo portsrepo.PermitRepositoryFacade
	siteRepo   portsrepo.SiteReader
}

// NewPermitService creates a new permit service
func NewPermitService(permitRepo portsrepo.PermitRepositoryFacade, siteRepo portsrepo.SiteReader, options ...ServiceOption) portssvc.PermitSvcFacade {
	return &permitService{
		BaseService: newBaseService(options...),
		permitRepo:  permitRepo,
		siteRepo:    siteRepo,
	}
}

var _ portssvc.PermitSvcFacade = (*permitService)(nil)

func (s *permitService) RequestPermit(ctx context.Context, p domain.Principal, req dto.CreatePermitRequest) (*domain.PermitRequest, error) {
	site, err := s.siteRepo.FindSiteByID(ctx, req.SiteID)
	if err != nil {
		return nil, s.repoError(ctx, notFoundAsValidation(err, "site not found"), "Failed to load site for permit", slog.String("site_id", req.SiteID))
	}
	res := access.Resource{Kind: access.KindPermit, TenantID: site.TenantID, SiteID: site.SiteID}
	if err := s.Authorize(ctx, p, access.ActionCreate, res); err != nil {
		return nil, err
	}

	now := s.Now()
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.NewValidationFailedError("endDate must be after startDate")
	}
	if req.EndDate.Before(now) {
		return nil, apperrors.NewValidationFailedError("endDate is already in the past")
	}

	permit := domain.PermitRequest{
		PermitID:    uuid.NewString(),
		TenantID:    site.TenantID,
		SiteID:      site.SiteID,
		PermitType:  strings.TrimSpace(req.PermitType),
		Description: req.Description,
		Status:      domain.PermitRequested,
		StartDate:   req.StartDate.UTC(),
		EndDate:     req.EndDate.UTC(),
		RequestedBy: p.UserID,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(p.UserID, now),
		Versioned:   domain.Versioned{Version: 1},
	}
	if err := s.permitRepo.SavePermit(ctx, permit); err != nil {
		return nil, s.repoError(ctx, err, "Failed to save permit", slog.String("site_id", site.SiteID))
	}

	s.publish(ctx, s.event(events.PermitRequested, p, permit.TenantID, permit.PermitID, map[string]any{
		"site_id":     permit.SiteID,
		"permit_type": permit.PermitType,
		"end_date":    permit.EndDate,
	}))
	return &permit, nil
}

func (s *permitService) loadPermit(ctx context.Context, p domain.Principal, permitID string, action access.Action, transition domain.PermitStatus) (*domain.PermitRequest, error) {
	permit, err := s.permitRepo.FindPermitByID(ctx, permitID)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to load permit", slog.String("permit_id", permitID))
	}
	res := access.Resource{
		Kind:       access.KindPermit,
		ID:         permit.PermitID,
		TenantID:   permit.TenantID,
		SiteID:     permit.SiteID,
		Transition: string(transition),
	}
	if err := s.Authorize(ctx, p, action, res); err != nil {
		return nil, err
	}
	return permit, nil
}

// observe returns the permit as it must be seen now. The first read after the end
// date persists approved -> expired; a concurrent reader that lost the race re-reads.
func (s *permitService) observe(ctx context.Context, permit *domain.PermitRequest) (*domain.PermitRequest, error) {
	now := s.Now()
	observed, stale := workflow.EvaluateExpiry(*permit, now)
	if !stale {
		return permit, nil
	}

	entity := workflow.Permit.Entity()
	err := s.permitRepo.TransitionPermit(ctx, observed, domain.PermitApproved, permit.Version)
	s.recordTransition(entity, string(domain.PermitApproved), string(domain.PermitExpired), err)
	switch {
	case err == nil:
		observed.Version = permit.Version + 1
		s.LogInfo(ctx, "Permit expired", slog.String("permit_id", permit.PermitID), slog.Time("end_date", permit.EndDate))
		s.publish(ctx, events.NewEvent(events.PermitExpired, permit.TenantID, permit.PermitID, workflow.SystemActor, now, map[string]any{
			"site_id":  permit.SiteID,
			"end_date": permit.EndDate,
		}))
		return &observed, nil
	case errors.Is(err, apperrors.ErrConcurrentModification):
		fresh, err := s.permitRepo.FindPermitByID(ctx, permit.PermitID)
		if err != nil {
			return nil, s.repoError(ctx, err, "Failed to reload permit", slog.String("permit_id", permit.PermitID))
		}
		view, _ := workflow.EvaluateExpiry(*fresh, now)
		return &view, nil
	default:
		// The read still reports expired; the next read retries the write.
		s.LogWarn(ctx, "Failed to persist permit expiry",
			slog.String("error", err.Error()),
			slog.String("permit_id", permit.PermitID))
		return &observed, nil
	}
}

func (s *permitService) GetPermit(ctx context.Context, p domain.Principal, permitID string) (*domain.PermitRequest, error) {
	permit, err := s.loadPermit(ctx, p, permitID, access.ActionRead, "")
	if err != nil {
		return nil, err
	}
	return s.observe(ctx, permit)
}

func (s *permitService) ListPermits(ctx context.Context, p domain.Principal, params dto.ListPermitsParams) ([]domain.PermitRequest, error) {
	res := access.Resource{Kind: access.KindPermit, TenantID: p.TenantID, SiteID: params.SiteID}
	if err := s.Authorize(ctx, p, access.ActionRead, res); err != nil {
		return nil, err
	}
	filter := domain.PermitFilter{SiteID: params.SiteID, Status: domain.PermitStatus(params.Status), AsOf: s.Now()}
	page := portsrepo.Page{Limit: params.Limit, Offset: params.Offset}.Normalize()
	permits, err := s.permitRepo.ListPermits(ctx, p.TenantID, filter, page)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to list permits", slog.String("tenant_id", p.TenantID))
	}

	observed := make([]domain.PermitRequest, 0, len(permits))
	for i := range permits {
		view, err := s.observe(ctx, &permits[i])
		if err != nil {
			return nil, err
		}
		if filter.Status != "" && view.Status != filter.Status {
			continue
		}
		observed = append(observed, *view)
	}
	return observed, nil
}

func (s *permitService) ApprovePermit(ctx context.Context, p domain.Principal, permitID string, req dto.DecidePermitRequest) (*domain.PermitRequest, error) {
	return s.decide(ctx, p, permitID, domain.PermitApproved, req.Notes)
}

func (s *permitService) DenyPermit(ctx context.Context, p domain.Principal, permitID string, req dto.DecidePermitRequest) (*domain.PermitRequest, error) {
	return s.decide(ctx, p, permitID, domain.PermitDenied, req.Notes)
}

func (s *permitService) decide(ctx context.Context, p domain.Principal, permitID string, to domain.PermitStatus, notes string) (*domain.PermitRequest, error) {
	stored, err := s.loadPermit(ctx, p, permitID, access.ActionTransition, to)
	if err != nil {
		return nil, err
	}
	permit, err := s.observe(ctx, stored)
	if err != nil {
		return nil, err
	}
	from := permit.Status
	entity := workflow.Permit.Entity()

	if err := workflow.CheckPermitDecision(from, to); err != nil {
		s.recordTransition(entity, string(from), string(to), err)
		return nil, err
	}
	now := s.Now()
	if to == domain.PermitApproved && permit.EndDate.Before(now) {
		err := apperrors.NewValidationFailedError("permit validity window has already ended")
		s.recordTransition(entity, string(from), string(to), err)
		return nil, err
	}

	expected := permit.Version
	workflow.ApplyPermitDecision(permit, to, strings.TrimSpace(notes), p.UserID, now)
	err = s.permitRepo.TransitionPermit(ctx, *permit, from, expected)
	s.recordTransition(entity, string(from), string(to), err)
	if err != nil {
		return nil, s.repoError(ctx, err, "Failed to record permit decision", slog.String("permit_id", permitID))
	}
	permit.Version = expected + 1

	s.LogInfo(ctx, "Permit decided",
		slog.String("permit_id", permitID),
		slog.String("decision", string(to)))
	s.publish(ctx, s.event(events.PermitDecided, p, permit.TenantID, permitID, map[string]any{
		"decision": to,
		"site_id":  permit.SiteID,
	}))
	return permit, nil
}
