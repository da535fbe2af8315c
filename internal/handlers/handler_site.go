package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// siteHandler handles HTTP requests related to construction sites and their role assignments.
type siteHandler struct {
	siteService portssvc.SiteSvcFacade
}

func newSiteHandler(ss portssvc.SiteSvcFacade) *siteHandler {
	return &siteHandler{siteService: ss}
}

// registerSiteRoutes registers site routes and the nested site-role routes.
func registerSiteRoutes(rg *gin.RouterGroup, siteService portssvc.SiteSvcFacade) {
	h := newSiteHandler(siteService)

	sites := rg.Group("/sites")
	{
		sites.POST("", h.createSite)
		sites.GET("", h.listSites)
		sites.GET("/:siteID", h.getSite)
		sites.PUT("/:siteID", h.updateSite)
		sites.DELETE("/:siteID", h.deleteSite)

		roles := sites.Group("/:siteID/roles")
		{
			roles.POST("", h.grantSiteRole)
			roles.GET("", h.listSiteRoles)
			roles.DELETE("/:roleID", h.revokeSiteRole)
		}
	}
}

// createSite godoc
// @Summary Create a site
// @Tags sites
// @Accept json
// @Produce json
// @Param site body dto.CreateSiteRequest true "Site details"
// @Success 201 {object} domain.Site
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /sites [post]
func (h *siteHandler) createSite(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	site, err := h.siteService.CreateSite(c.Request.Context(), p, req)
	if err != nil {
		respondWithError(c, err, "Failed to create site")
		return
	}
	c.JSON(http.StatusCreated, site)
}

// listSites godoc
// @Summary List sites
// @Tags sites
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} domain.Site
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /sites [get]
func (h *siteHandler) listSites(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	sites, err := h.siteService.ListSites(c.Request.Context(), p, params)
	if err != nil {
		respondWithError(c, err, "Failed to list sites")
		return
	}
	c.JSON(http.StatusOK, sites)
}

// getSite godoc
// @Summary Get a site
// @Tags sites
// @Produce json
// @Param siteID path string true "Site ID"
// @Success 200 {object} domain.Site
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sites/{siteID} [get]
func (h *siteHandler) getSite(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	site, err := h.siteService.GetSite(c.Request.Context(), p, c.Param("siteID"))
	if err != nil {
		respondWithError(c, err, "Failed to get site")
		return
	}
	c.JSON(http.StatusOK, site)
}

// updateSite godoc
// @Summary Update a site
// @Tags sites
// @Accept json
// @Produce json
// @Param siteID path string true "Site ID"
// @Param site body dto.UpdateSiteRequest true "Fields to update"
// @Success 200 {object} domain.Site
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sites/{siteID} [put]
func (h *siteHandler) updateSite(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	site, err := h.siteService.UpdateSite(c.Request.Context(), p, c.Param("siteID"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update site")
		return
	}
	c.JSON(http.StatusOK, site)
}

// deleteSite godoc
// @Summary Deactivate a site
// @Tags sites
// @Param siteID path string true "Site ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sites/{siteID} [delete]
func (h *siteHandler) deleteSite(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	if err := h.siteService.DeleteSite(c.Request.Context(), p, c.Param("siteID")); err != nil {
		respondWithError(c, err, "Failed to delete site")
		return
	}
	c.Status(http.StatusNoContent)
}

// grantSiteRole godoc
// @Summary Grant a site role
// @Description Assigns a site role to a user of the same tenant for an optional date range.
// @Tags sites
// @Accept json
// @Produce json
// @Param siteID path string true "Site ID"
// @Param role body dto.GrantSiteRoleRequest true "Role assignment"
// @Success 201 {object} domain.UserSiteRole
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sites/{siteID}/roles [post]
func (h *siteHandler) grantSiteRole(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.GrantSiteRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	role, err := h.siteService.GrantSiteRole(c.Request.Context(), p, c.Param("siteID"), req)
	if err != nil {
		respondWithError(c, err, "Failed to grant site role")
		return
	}
	c.JSON(http.StatusCreated, role)
}

// listSiteRoles godoc
// @Summary List site roles
// @Tags sites
// @Produce json
// @Param siteID path string true "Site ID"
// @Success 200 {array} domain.UserSiteRole
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sites/{siteID}/roles [get]
func (h *siteHandler) listSiteRoles(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	roles, err := h.siteService.ListSiteRoles(c.Request.Context(), p, c.Param("siteID"))
	if err != nil {
		respondWithError(c, err, "Failed to list site roles")
		return
	}
	c.JSON(http.StatusOK, roles)
}

// revokeSiteRole godoc
// @Summary Revoke a site role
// @Tags sites
// @Param siteID path string true "Site ID"
// @Param roleID path string true "Site role assignment ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sites/{siteID}/roles/{roleID} [delete]
func (h *siteHandler) revokeSiteRole(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	if err := h.siteService.RevokeSiteRole(c.Request.Context(), p, c.Param("siteID"), c.Param("roleID")); err != nil {
		respondWithError(c, err, "Failed to revoke site role")
		return
	}
	c.Status(http.StatusNoContent)
}
