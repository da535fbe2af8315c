package handlers

import (
	"net/http"

	"github.com/SscSPs/site_safety_app/internal/core/access"
	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// tenantHandler serves the caller's tenant and the caller's own identity.
type tenantHandler struct {
	tenantService portssvc.TenantSvcFacade
	userService   portssvc.UserSvcFacade
	accessService portssvc.AccessSvc
}

// MeResponse describes the caller together with the capabilities a UI should render.
type MeResponse struct {
	User         dto.UserResponse    `json:"user"`
	Capabilities []access.Capability `json:"capabilities"`
}

func registerTenantRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &tenantHandler{
		tenantService: services.Tenant,
		userService:   services.User,
		accessService: services.Access,
	}

	rg.GET("/tenant", h.getTenant)
	rg.PUT("/tenant/score-weights", h.updateScoreWeights)
	rg.GET("/me", h.getMe)
	rg.GET("/me/capabilities", h.getCapabilities)
}

// getTenant godoc
// @Summary Get the caller's tenant
// @Tags tenant
// @Produce json
// @Success 200 {object} dto.TenantResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenant [get]
func (h *tenantHandler) getTenant(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	tenant, err := h.tenantService.GetTenant(c.Request.Context(), p)
	if err != nil {
		respondWithError(c, err, "Failed to get tenant")
		return
	}
	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// updateScoreWeights godoc
// @Summary Set the safety score weights
// @Description Overrides the default component weights for the tenant. Send reset=true to restore the defaults.
// @Tags tenant
// @Accept json
// @Produce json
// @Param weights body dto.UpdateScoreWeightsRequest true "Weights"
// @Success 200 {object} dto.TenantResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenant/score-weights [put]
func (h *tenantHandler) updateScoreWeights(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateScoreWeightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	tenant, err := h.tenantService.UpdateScoreWeights(c.Request.Context(), p, req)
	if err != nil {
		respondWithError(c, err, "Failed to update score weights")
		return
	}
	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// getMe godoc
// @Summary Get the current user
// @Tags users
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *tenantHandler) getMe(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), p, p.UserID)
	if err != nil {
		respondWithError(c, err, "Failed to get current user")
		return
	}
	c.JSON(http.StatusOK, MeResponse{
		User:         dto.ToUserResponse(user),
		Capabilities: h.accessService.Capabilities(c.Request.Context(), p),
	})
}

// getCapabilities godoc
// @Summary List the caller's capabilities
// @Description Lists the privileged operations the caller may perform, tenant-wide and per site.
// @Tags users
// @Produce json
// @Success 200 {array} access.Capability
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /me/capabilities [get]
func (h *tenantHandler) getCapabilities(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.accessService.Capabilities(c.Request.Context(), p))
}
