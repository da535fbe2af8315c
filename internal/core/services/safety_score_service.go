package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/access"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_safety_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/core/scoring"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/SscSPs/site_safety_app/internal/platform/cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const scoreTracerName = "github.com/SscSPs/site_safety_app/safety-score"

// ScoreSources are the repositories the aggregator reads its facts from.
type ScoreSources struct {
	Tenants     portsrepo.TenantReader
	Users       portsrepo.UserReader
	Sites       portsrepo.SiteRepositoryFacade
	Hazards     portsrepo.HazardReader
	Trainings   portsrepo.TrainingReader
	Inspections portsrepo.InspectionReader
	Incidents   portsrepo.IncidentReader
}

type safetyScoreService struct {
	BaseService
	sources        ScoreSources
	scoreCache     cache.ScoreCache
	defaultWeights domain.ScoreWeights
}

// NewSafetyScoreService creates the score service. A nil cache disables caching.
func NewSafetyScoreService(sources ScoreSources, scoreCache cache.ScoreCache, defaultWeights domain.ScoreWeights, options ...ServiceOption) portssvc.SafetyScoreSvc {
	if scoreCache == nil {
		scoreCache = cache.NoopScoreCache{}
	}
	return &safetyScoreService{
		BaseService:    newBaseService(options...),
		sources:        sources,
		scoreCache:     scoreCache,
		defaultWeights: defaultWeights,
	}
}

var _ portssvc.SafetyScoreSvc = (*safetyScoreService)(nil)

func validScope(scope domain.ScoreScope) bool {
	for _, s := range domain.ScoreScopes {
		if s == scope {
			return true
		}
	}
	return false
}

func (s *safetyScoreService) GetSafetyScores(ctx context.Context, p domain.Principal, params dto.SafetyScoreParams) (*domain.SafetyScoreReport, error) {
	if err := s.Authorize(ctx, p, access.ActionRead, access.Resource{Kind: access.KindScore, TenantID: p.TenantID}); err != nil {
		return nil, err
	}
	scope := domain.ScoreScope(params.Scope)
	if !validScope(scope) {
		return nil, apperrors.NewValidationFailedError("scope must be one of user, site, subcontractor")
	}

	asOf := s.Now()
	if params.AsOf != nil {
		asOf = *params.AsOf
	}
	asOf = asOf.UTC().Truncate(time.Minute)
	window, err := scoring.ParseWindow(params.Window, asOf)
	if err != nil {
		return nil, err
	}

	key := cache.ScoreKey(p.TenantID, scope, window)
	cached, found, err := s.scoreCache.Get(ctx, key)
	switch {
	case err != nil:
		s.Metrics.ObserveCache("error")
		s.LogWarn(ctx, "Safety score cache read failed", slog.String("error", err.Error()), slog.String("cache_key", key))
	case found:
		s.Metrics.ObserveCache("hit")
		return cached, nil
	default:
		s.Metrics.ObserveCache("miss")
	}

	ctx, span := otel.Tracer(scoreTracerName).Start(ctx, "SafetyScore.Compute")
	defer span.End()
	span.SetAttributes(
		attribute.String("tenant_id", p.TenantID),
		attribute.String("scope", string(scope)),
		attribute.String("window", window.To.Sub(window.From).String()),
	)

	weights, err := s.weights(ctx, p.TenantID)
	if err != nil {
		return nil, err
	}
	facts, err := s.loadFacts(ctx, p.TenantID, window)
	if err != nil {
		return nil, err
	}

	report := domain.SafetyScoreReport{
		Scope:   scope,
		Window:  window,
		Weights: weights,
		Scores:  scoring.Compute(scope, facts, window, weights),
	}
	span.SetAttributes(attribute.Int("entities", len(report.Scores)))

	if err := s.scoreCache.Set(ctx, key, report); err != nil {
		s.LogWarn(ctx, "Safety score cache write failed", slog.String("error", err.Error()), slog.String("cache_key", key))
	}
	return &report, nil
}

// weights returns the tenant override or the configured defaults.
func (s *safetyScoreService) weights(ctx context.Context, tenantID string) (domain.ScoreWeights, error) {
	tenant, err := s.sources.Tenants.FindTenantByID(ctx, tenantID)
	if err != nil {
		return domain.ScoreWeights{}, s.repoError(ctx, err, "Failed to load tenant score weights", slog.String("tenant_id", tenantID))
	}
	if tenant.ScoreWeights != nil {
		return *tenant.ScoreWeights, nil
	}
	return s.defaultWeights, nil
}

// loadFacts reads everything the current and the preceding window need.
func (s *safetyScoreService) loadFacts(ctx context.Context, tenantID string, window domain.ScoreWindow) (domain.ScoreFacts, error) {
	from, to := window.Previous().From, window.To
	fail := func(err error, what string) (domain.ScoreFacts, error) {
		return domain.ScoreFacts{}, s.repoError(ctx, err, "Failed to load "+what+" for safety score", slog.String("tenant_id", tenantID))
	}

	var facts domain.ScoreFacts
	var err error
	if facts.Users, err = s.sources.Users.ListAllUsers(ctx, tenantID); err != nil {
		return fail(err, "users")
	}
	if facts.Sites, err = s.sources.Sites.ListAllSites(ctx, tenantID); err != nil {
		return fail(err, "sites")
	}
	if facts.SiteRoles, err = s.sources.Sites.ListSiteRolesByTenant(ctx, tenantID); err != nil {
		return fail(err, "site roles")
	}
	if facts.Hazards, err = s.sources.Hazards.ListHazardFacts(ctx, tenantID, from, to); err != nil {
		return fail(err, "hazard assignments")
	}
	if facts.Trainings, err = s.sources.Trainings.ListTrainingsDue(ctx, tenantID, from, to); err != nil {
		return fail(err, "training records")
	}
	if facts.Inspections, err = s.sources.Inspections.ListCompletedInspections(ctx, tenantID, from, to); err != nil {
		return fail(err, "inspections")
	}
	if facts.Incidents, err = s.sources.Incidents.ListIncidentsBetween(ctx, tenantID, from, to); err != nil {
		return fail(err, "incidents")
	}
	return facts, nil
}
