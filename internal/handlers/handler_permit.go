package handlers

import (
	"net/http"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// permitHandler handles HTTP requests related to work permits.
type permitHandler struct {
	permitService portssvc.PermitSvcFacade
}

// RegisterPermitRoutes registers permit routes, including the approval decisions.
func RegisterPermitRoutes(rg *gin.RouterGroup, permitService portssvc.PermitSvcFacade) {
	h := &permitHandler{permitService: permitService}

	permits := rg.Group("/permits")
	{
		permits.POST("", h.requestPermit)
		permits.GET("", h.listPermits)
		permits.GET("/:permitID", h.getPermit)
		permits.POST("/:permitID/approve", h.approvePermit)
		permits.POST("/:permitID/deny", h.denyPermit)
	}
}

// requestPermit godoc
// @Summary Request a permit
// @Tags permits
// @Accept json
// @Produce json
// @Param permit body dto.CreatePermitRequest true "Permit details"
// @Success 201 {object} domain.PermitRequest
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /permits [post]
func (h *permitHandler) requestPermit(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreatePermitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	permit, err := h.permitService.RequestPermit(c.Request.Context(), p, req)
	if err != nil {
		respondWithError(c, err, "Failed to request permit")
		return
	}
	c.JSON(http.StatusCreated, permit)
}

// listPermits godoc
// @Summary List permits
// @Tags permits
// @Produce json
// @Param siteID query string false "Filter by site"
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} domain.PermitRequest
// @Security BearerAuth
// @Router /permits [get]
func (h *permitHandler) listPermits(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListPermitsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	permits, err := h.permitService.ListPermits(c.Request.Context(), p, params)
	if err != nil {
		respondWithError(c, err, "Failed to list permits")
		return
	}
	c.JSON(http.StatusOK, permits)
}

// getPermit godoc
// @Summary Get a permit
// @Tags permits
// @Produce json
// @Param permitID path string true "Permit ID"
// @Success 200 {object} domain.PermitRequest
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /permits/{permitID} [get]
func (h *permitHandler) getPermit(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	permit, err := h.permitService.GetPermit(c.Request.Context(), p, c.Param("permitID"))
	if err != nil {
		respondWithError(c, err, "Failed to get permit")
		return
	}
	c.JSON(http.StatusOK, permit)
}

// approvePermit godoc
// @Summary Approve a permit
// @Description Approves a pending permit. Requires safety_officer or a site_manager role at the permit's site.
// @Tags permits
// @Accept json
// @Produce json
// @Param permitID path string true "Permit ID"
// @Param decision body dto.DecidePermitRequest false "Decision notes"
// @Success 200 {object} domain.PermitRequest
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Permit is not pending"
// @Security BearerAuth
// @Router /permits/{permitID}/approve [post]
func (h *permitHandler) approvePermit(c *gin.Context) {
	h.decide(c, domain.PermitApproved)
}

// denyPermit godoc
// @Summary Deny a permit
// @Tags permits
// @Accept json
// @Produce json
// @Param permitID path string true "Permit ID"
// @Param decision body dto.DecidePermitRequest false "Decision notes"
// @Success 200 {object} domain.PermitRequest
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Permit is not pending"
// @Security BearerAuth
// @Router /permits/{permitID}/deny [post]
func (h *permitHandler) denyPermit(c *gin.Context) {
	h.decide(c, domain.PermitDenied)
}

func (h *permitHandler) decide(c *gin.Context, to domain.PermitStatus) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.DecidePermitRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	var (
		permit *domain.PermitRequest
		err    error
	)
	if to == domain.PermitApproved {
		permit, err = h.permitService.ApprovePermit(c.Request.Context(), p, c.Param("permitID"), req)
	} else {
		permit, err = h.permitService.DenyPermit(c.Request.Context(), p, c.Param("permitID"), req)
	}
	if err != nil {
		respondWithError(c, err, "Failed to decide permit")
		return
	}
	c.JSON(http.StatusOK, permit)
}
