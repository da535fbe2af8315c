package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TenantRepo     TenantRepositoryFacade
	UserRepo       UserRepositoryFacade
	SiteRepo       SiteRepositoryFacade
	HazardRepo     HazardRepositoryFacade
	IncidentRepo   IncidentRepositoryFacade
	PermitRepo     PermitRepositoryFacade
	TemplateRepo   TemplateRepositoryFacade
	InspectionRepo InspectionRepositoryFacade
	TrainingRepo   TrainingRepositoryFacade
}
