package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/SscSPs/site_safety_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// safetyScoreHandler serves ranked safety scores.
type safetyScoreHandler struct {
	safetyScoreService portssvc.SafetyScoreSvc
}

// RegisterSafetyScoreRoutes registers the safety score routes.
func RegisterSafetyScoreRoutes(rg *gin.RouterGroup, safetyScoreService portssvc.SafetyScoreSvc) {
	h := &safetyScoreHandler{safetyScoreService: safetyScoreService}
	rg.GET("/safety-scores", h.getSafetyScores)
}

// getSafetyScores godoc
// @Summary Get safety scores
// @Description Computes weighted 0-100 safety scores per site, subcontractor or user over a time window, ranked best first.
// @Tags safety-scores
// @Produce json
// @Param scope query string true "Scope" Enums(site, subcontractor, user)
// @Param window query string false "Window such as 7d, 30d or 90d" default(30d)
// @Param asOf query string false "End of the window (RFC 3339)" default(now)
// @Success 200 {object} domain.SafetyScoreReport
// @Failure 400 {object} ErrorResponse "Invalid scope or window"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to compute scores"
// @Security BearerAuth
// @Router /safety-scores [get]
func (h *safetyScoreHandler) getSafetyScores(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var params dto.SafetyScoreParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request for safety scores", slog.String("scope", params.Scope), slog.String("window", params.Window))

	report, err := h.safetyScoreService.GetSafetyScores(c.Request.Context(), p, params)
	if err != nil {
		respondWithError(c, err, "Failed to compute safety scores")
		return
	}
	c.JSON(http.StatusOK, report)
}
