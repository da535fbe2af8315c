package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// incidentHandler handles HTTP requests related to incident reports.
type incidentHandler struct {
	incidentService portssvc.IncidentSvcFacade
}

func RegisterIncidentRoutes(rg *gin.RouterGroup, incidentService portssvc.IncidentSvcFacade) {
	h := &incidentHandler{incidentService: incidentService}

	incidents := rg.Group("/incidents")
	{
		incidents.POST("", h.createIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/:incidentID", h.getIncident)
		incidents.POST("/:incidentID/transition", h.transitionIncident)
	}
}

// createIncident godoc
// @Summary Report an incident
// @Tags incidents
// @Accept json
// @Produce json
// @Param incident body dto.CreateIncidentRequest true "Incident details"
// @Success 201 {object} domain.IncidentReport
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /incidents [post]
func (h *incidentHandler) createIncident(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	incident, err := h.incidentService.CreateIncident(c.Request.Context(), p, req)
	if err != nil {
		respondWithError(c, err, "Failed to create incident")
		return
	}
	c.JSON(http.StatusCreated, incident)
}

// listIncidents godoc
// @Summary List incidents
// @Tags incidents
// @Produce json
// @Param siteID query string false "Filter by site"
// @Param status query string false "Filter by status"
// @Param severity query string false "Filter by severity"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} domain.IncidentReport
// @Security BearerAuth
// @Router /incidents [get]
func (h *incidentHandler) listIncidents(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListIncidentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	incidents, err := h.incidentService.ListIncidents(c.Request.Context(), p, params)
	if err != nil {
		respondWithError(c, err, "Failed to list incidents")
		return
	}
	c.JSON(http.StatusOK, incidents)
}

// getIncident godoc
// @Summary Get an incident
// @Tags incidents
// @Produce json
// @Param incidentID path string true "Incident ID"
// @Success 200 {object} domain.IncidentReport
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /incidents/{incidentID} [get]
func (h *incidentHandler) getIncident(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	incident, err := h.incidentService.GetIncident(c.Request.Context(), p, c.Param("incidentID"))
	if err != nil {
		respondWithError(c, err, "Failed to get incident")
		return
	}
	c.JSON(http.StatusOK, incident)
}

// transitionIncident godoc
// @Summary Transition an incident
// @Description Moves an incident along its investigation lifecycle. Resolving requires the root cause and corrective actions.
// @Tags incidents
// @Accept json
// @Produce json
// @Param incidentID path string true "Incident ID"
// @Param transition body dto.TransitionIncidentRequest true "Target status and findings"
// @Success 200 {object} domain.IncidentReport
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Invalid transition"
// @Failure 422 {object} ErrorResponse "Required investigation fields missing"
// @Security BearerAuth
// @Router /incidents/{incidentID}/transition [post]
func (h *incidentHandler) transitionIncident(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.TransitionIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	incident, err := h.incidentService.TransitionIncident(c.Request.Context(), p, c.Param("incidentID"), req)
	if err != nil {
		respondWithError(c, err, "Failed to transition incident")
		return
	}
	c.JSON(http.StatusOK, incident)
}
