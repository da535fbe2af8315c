package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type trainingHandler struct {
	trainingService portssvc.TrainingSvcFacade
}

func registerTrainingRoutes(rg *gin.RouterGroup, trainingService portssvc.TrainingSvcFacade) {
	h := &trainingHandler{trainingService: trainingService}

	trainings := rg.Group("/trainings")
	{
		trainings.POST("", h.assignTraining)
		trainings.GET("", h.listTrainings)
		trainings.POST("/:trainingID/complete", h.completeTraining)
	}
}

// assignTraining godoc
// @Summary Assign a training
// @Tags trainings
// @Accept json
// @Produce json
// @Param training body dto.AssignTrainingRequest true "Training assignment"
// @Success 201 {object} domain.TrainingRecord
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /trainings [post]
func (h *trainingHandler) assignTraining(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.AssignTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	record, err := h.trainingService.AssignTraining(c.Request.Context(), p, req)
	if err != nil {
		respondWithError(c, err, "Failed to assign training")
		return
	}
	c.JSON(http.StatusCreated, record)
}

// listTrainings godoc
// @Summary List training records
// @Tags trainings
// @Produce json
// @Param userID query string false "Filter by trainee"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} domain.TrainingRecord
// @Security BearerAuth
// @Router /trainings [get]
func (h *trainingHandler) listTrainings(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListTrainingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	records, err := h.trainingService.ListTrainings(c.Request.Context(), p, params)
	if err != nil {
		respondWithError(c, err, "Failed to list trainings")
		return
	}
	c.JSON(http.StatusOK, records)
}

// completeTraining godoc
// @Summary Complete a training
// @Description Marks a training completed. Allowed for the trainee and privileged roles.
// @Tags trainings
// @Produce json
// @Param trainingID path string true "Training ID"
// @Success 200 {object} domain.TrainingRecord
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /trainings/{trainingID}/complete [post]
func (h *trainingHandler) completeTraining(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	record, err := h.trainingService.CompleteTraining(c.Request.Context(), p, c.Param("trainingID"))
	if err != nil {
		respondWithError(c, err, "Failed to complete training")
		return
	}
	c.JSON(http.StatusOK, record)
}
