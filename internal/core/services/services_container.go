package services

import (
	portsrepo "github.com/SscSPs/site_safety_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/platform/cache"
	"github.com/SscSPs/site_safety_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, scoreCache cache.ScoreCache, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Access = NewAccessService(repos.UserRepo, repos.SiteRepo, options...)
	container.Auth = NewAuthService(cfg, repos.TenantRepo, repos.UserRepo, options...)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)
	container.Tenant = NewTenantService(repos.TenantRepo, scoreCache, options...)
	container.User = NewUserService(repos.UserRepo, options...)
	container.Site = NewSiteService(repos.SiteRepo, repos.UserRepo, options...)

	container.Hazard = NewHazardService(repos.HazardRepo, repos.SiteRepo, repos.UserRepo, options...)
	container.Incident = NewIncidentService(repos.IncidentRepo, repos.SiteRepo, options...)
	container.Permit = NewPermitService(repos.PermitRepo, repos.SiteRepo, options...)
	container.Template = NewTemplateService(repos.TemplateRepo, options...)
	container.Inspection = NewInspectionService(repos.InspectionRepo, repos.TemplateRepo, repos.SiteRepo, repos.UserRepo, options...)
	container.Training = NewTrainingService(repos.TrainingRepo, repos.UserRepo, options...)

	container.SafetyScore = NewSafetyScoreService(ScoreSources{
		Tenants:     repos.TenantRepo,
		Users:       repos.UserRepo,
		Sites:       repos.SiteRepo,
		Hazards:     repos.HazardRepo,
		Trainings:   repos.TrainingRepo,
		Inspections: repos.InspectionRepo,
		Incidents:   repos.IncidentRepo,
	}, scoreCache, cfg.ScoreWeights, options...)

	return container
}
