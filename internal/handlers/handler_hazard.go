package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/SscSPs/site_safety_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// hazardHandler handles HTTP requests related to hazard reports.
type hazardHandler struct {
	hazardService portssvc.HazardSvcFacade
}

func newHazardHandler(hs portssvc.HazardSvcFacade) *hazardHandler {
	return &hazardHandler{hazardService: hs}
}

// RegisterHazardRoutes registers hazard routes, including assignment and comments.
func RegisterHazardRoutes(rg *gin.RouterGroup, hazardService portssvc.HazardSvcFacade) {
	h := newHazardHandler(hazardService)

	hazards := rg.Group("/hazards")
	{
		hazards.POST("", h.createHazard)
		hazards.GET("", h.listHazards)
		hazards.GET("/overdue", h.listOverdueHazards)
		hazards.GET("/:hazardID", h.getHazard)
		hazards.PUT("/:hazardID", h.updateHazard)
		hazards.POST("/:hazardID/assign", h.assignHazard)
		hazards.POST("/:hazardID/transition", h.transitionHazard)
		hazards.POST("/:hazardID/comments", h.addComment)
		hazards.GET("/:hazardID/comments", h.listComments)
	}
}

func (h *hazardHandler) toResponse(hwa domain.HazardWithAssignment) dto.HazardResponse {
	return dto.ToHazardResponse(hwa, h.hazardService.IsOverdue(hwa))
}

func (h *hazardHandler) toResponses(hazards []domain.HazardWithAssignment) []dto.HazardResponse {
	resp := make([]dto.HazardResponse, len(hazards))
	for i := range hazards {
		resp[i] = h.toResponse(hazards[i])
	}
	return resp
}

// createHazard godoc
// @Summary Report a hazard
// @Description Reports a hazard at a site. The hazard starts in status open.
// @Tags hazards
// @Accept json
// @Produce json
// @Param hazard body dto.CreateHazardRequest true "Hazard details"
// @Success 201 {object} dto.HazardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /hazards [post]
func (h *hazardHandler) createHazard(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateHazardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	hazard, err := h.hazardService.CreateHazard(c.Request.Context(), p, req)
	if err != nil {
		respondWithError(c, err, "Failed to create hazard")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Hazard reported", slog.String("hazard_id", hazard.Hazard.HazardID))
	c.JSON(http.StatusCreated, h.toResponse(*hazard))
}

// listHazards godoc
// @Summary List hazards
// @Description Lists the tenant's hazards, newest first, with token pagination.
// @Tags hazards
// @Produce json
// @Param siteID query string false "Filter by site"
// @Param status query string false "Filter by status"
// @Param severity query string false "Filter by severity"
// @Param assigneeID query string false "Filter by assignee"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListHazardsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /hazards [get]
func (h *hazardHandler) listHazards(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListHazardsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	hazards, nextToken, err := h.hazardService.ListHazards(c.Request.Context(), p, params)
	if err != nil {
		respondWithError(c, err, "Failed to list hazards")
		return
	}
	c.JSON(http.StatusOK, dto.ListHazardsResponse{Hazards: h.toResponses(hazards), NextToken: nextToken})
}

// listOverdueHazards godoc
// @Summary List overdue hazards
// @Description Lists hazards whose assignment is past its due date and not yet resolved.
// @Tags hazards
// @Produce json
// @Success 200 {array} dto.HazardResponse
// @Security BearerAuth
// @Router /hazards/overdue [get]
func (h *hazardHandler) listOverdueHazards(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	hazards, err := h.hazardService.ListOverdueHazards(c.Request.Context(), p)
	if err != nil {
		respondWithError(c, err, "Failed to list overdue hazards")
		return
	}
	c.JSON(http.StatusOK, h.toResponses(hazards))
}

// getHazard godoc
// @Summary Get a hazard
// @Tags hazards
// @Produce json
// @Param hazardID path string true "Hazard ID"
// @Success 200 {object} dto.HazardResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /hazards/{hazardID} [get]
func (h *hazardHandler) getHazard(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	hazard, err := h.hazardService.GetHazard(c.Request.Context(), p, c.Param("hazardID"))
	if err != nil {
		respondWithError(c, err, "Failed to get hazard")
		return
	}
	c.JSON(http.StatusOK, h.toResponse(*hazard))
}

// updateHazard godoc
// @Summary Update a hazard
// @Tags hazards
// @Accept json
// @Produce json
// @Param hazardID path string true "Hazard ID"
// @Param hazard body dto.UpdateHazardRequest true "Fields to update"
// @Success 200 {object} dto.HazardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Hazard is closed or was modified concurrently"
// @Security BearerAuth
// @Router /hazards/{hazardID} [put]
func (h *hazardHandler) updateHazard(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateHazardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	hazard, err := h.hazardService.UpdateHazard(c.Request.Context(), p, c.Param("hazardID"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update hazard")
		return
	}
	c.JSON(http.StatusOK, h.toResponse(*hazard))
}

// assignHazard godoc
// @Summary Assign a hazard
// @Description Assigns an open hazard. The due date follows from the severity.
// @Tags hazards
// @Accept json
// @Produce json
// @Param hazardID path string true "Hazard ID"
// @Param assignment body dto.AssignHazardRequest true "Assignee"
// @Success 200 {object} dto.HazardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already assigned or invalid transition"
// @Security BearerAuth
// @Router /hazards/{hazardID}/assign [post]
func (h *hazardHandler) assignHazard(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.AssignHazardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	hazard, err := h.hazardService.AssignHazard(c.Request.Context(), p, c.Param("hazardID"), req)
	if err != nil {
		respondWithError(c, err, "Failed to assign hazard")
		return
	}
	c.JSON(http.StatusOK, h.toResponse(*hazard))
}

// transitionHazard godoc
// @Summary Transition a hazard
// @Description Moves a hazard to another status along its lifecycle.
// @Tags hazards
// @Accept json
// @Produce json
// @Param hazardID path string true "Hazard ID"
// @Param transition body dto.TransitionHazardRequest true "Target status"
// @Success 200 {object} dto.HazardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Invalid transition"
// @Security BearerAuth
// @Router /hazards/{hazardID}/transition [post]
func (h *hazardHandler) transitionHazard(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.TransitionHazardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	hazard, err := h.hazardService.TransitionHazard(c.Request.Context(), p, c.Param("hazardID"), req)
	if err != nil {
		respondWithError(c, err, "Failed to transition hazard")
		return
	}
	c.JSON(http.StatusOK, h.toResponse(*hazard))
}

// addComment godoc
// @Summary Comment on a hazard
// @Tags hazards
// @Accept json
// @Produce json
// @Param hazardID path string true "Hazard ID"
// @Param comment body dto.AddCommentRequest true "Comment"
// @Success 201 {object} domain.HazardComment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /hazards/{hazardID}/comments [post]
func (h *hazardHandler) addComment(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	comment, err := h.hazardService.AddComment(c.Request.Context(), p, c.Param("hazardID"), req)
	if err != nil {
		respondWithError(c, err, "Failed to add comment")
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// listComments godoc
// @Summary List hazard comments
// @Tags hazards
// @Produce json
// @Param hazardID path string true "Hazard ID"
// @Success 200 {array} domain.HazardComment
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /hazards/{hazardID}/comments [get]
func (h *hazardHandler) listComments(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	comments, err := h.hazardService.ListComments(c.Request.Context(), p, c.Param("hazardID"))
	if err != nil {
		respondWithError(c, err, "Failed to list comments")
		return
	}
	c.JSON(http.StatusOK, comments)
}
