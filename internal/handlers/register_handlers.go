package handlers

import (
	"github.com/SscSPs/site_safety_app/cmd/docs"
	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/middleware"
	"github.com/SscSPs/site_safety_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	// Every v1 route needs a valid token and a principal resolved from the database
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.PrincipalMiddleware(service.Access),
	)

	registerTenantRoutes(v1, service)
	registerUserRoutes(v1, service.User)
	registerSiteRoutes(v1, service.Site)
	RegisterHazardRoutes(v1, service.Hazard)
	RegisterIncidentRoutes(v1, service.Incident)
	RegisterPermitRoutes(v1, service.Permit)
	RegisterInspectionRoutes(v1, service.Template, service.Inspection)
	registerTrainingRoutes(v1, service.Training)
	RegisterSafetyScoreRoutes(v1, service.SafetyScore)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
