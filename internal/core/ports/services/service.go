package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Access      AccessSvc
	Auth        AuthSvcFacade
	GoogleOAuth GoogleOAuthHandlerSvcFacade
	Tenant      TenantSvcFacade
	User        UserSvcFacade
	Site        SiteSvcFacade
	Hazard      HazardSvcFacade
	Incident    IncidentSvcFacade
	Permit      PermitSvcFacade
	Template    TemplateSvcFacade
	Inspection  InspectionSvcFacade
	Training    TrainingSvcFacade
	SafetyScore SafetyScoreSvc
}
