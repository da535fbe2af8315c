package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/SscSPs/site_safety_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// inspectionHandler handles templates, inspections and their findings.
type inspectionHandler struct {
	templateService   portssvc.TemplateSvcFacade
	inspectionService portssvc.InspectionSvcFacade
}

func newInspectionHandler(ts portssvc.TemplateSvcFacade, is portssvc.InspectionSvcFacade) *inspectionHandler {
	return &inspectionHandler{templateService: ts, inspectionService: is}
}

// RegisterInspectionRoutes registers template, inspection and finding routes.
func RegisterInspectionRoutes(rg *gin.RouterGroup, templateService portssvc.TemplateSvcFacade, inspectionService portssvc.InspectionSvcFacade) {
	h := newInspectionHandler(templateService, inspectionService)

	templates := rg.Group("/inspection-templates")
	{
		templates.POST("", h.createTemplate)
		templates.GET("", h.listTemplates)
		templates.GET("/:templateID", h.getTemplate)
		templates.PUT("/:templateID", h.updateTemplate)
		templates.DELETE("/:templateID", h.deleteTemplate)
		templates.POST("/:templateID/instantiate", h.instantiate)
	}

	inspections := rg.Group("/inspections")
	{
		inspections.GET("", h.listInspections)
		inspections.GET("/:inspectionID", h.getInspection)
		inspections.POST("/:inspectionID/responses", h.recordResponse)
		inspections.POST("/:inspectionID/complete", h.completeInspection)
		inspections.POST("/:inspectionID/cancel", h.cancelInspection)
	}

	findings := rg.Group("/findings")
	{
		findings.GET("", h.listFindings)
		findings.PUT("/:findingID", h.updateFinding)
	}
}

// createTemplate godoc
// @Summary Create an inspection template
// @Tags templates
// @Accept json
// @Produce json
// @Param template body dto.CreateTemplateRequest true "Template and checklist"
// @Success 201 {object} domain.InspectionTemplate
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /inspection-templates [post]
func (h *inspectionHandler) createTemplate(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	template, err := h.templateService.CreateTemplate(c.Request.Context(), p, req)
	if err != nil {
		respondWithError(c, err, "Failed to create template")
		return
	}
	c.JSON(http.StatusCreated, template)
}

// listTemplates godoc
// @Summary List inspection templates
// @Tags templates
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} domain.InspectionTemplate
// @Security BearerAuth
// @Router /inspection-templates [get]
func (h *inspectionHandler) listTemplates(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	templates, err := h.templateService.ListTemplates(c.Request.Context(), p, params)
	if err != nil {
		respondWithError(c, err, "Failed to list templates")
		return
	}
	c.JSON(http.StatusOK, templates)
}

// getTemplate godoc
// @Summary Get an inspection template
// @Description Returns the template with the checklist of its current version.
// @Tags templates
// @Produce json
// @Param templateID path string true "Template ID"
// @Success 200 {object} domain.InspectionTemplate
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /inspection-templates/{templateID} [get]
func (h *inspectionHandler) getTemplate(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	template, err := h.templateService.GetTemplate(c.Request.Context(), p, c.Param("templateID"))
	if err != nil {
		respondWithError(c, err, "Failed to get template")
		return
	}
	c.JSON(http.StatusOK, template)
}

// updateTemplate godoc
// @Summary Publish a new template version
// @Description Replaces the checklist with a new version. Existing inspections keep the version they were created with.
// @Tags templates
// @Accept json
// @Produce json
// @Param templateID path string true "Template ID"
// @Param template body dto.UpdateTemplateRequest true "Template and checklist"
// @Success 200 {object} domain.InspectionTemplate
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Concurrent modification"
// @Security BearerAuth
// @Router /inspection-templates/{templateID} [put]
func (h *inspectionHandler) updateTemplate(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	template, err := h.templateService.UpdateTemplate(c.Request.Context(), p, c.Param("templateID"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update template")
		return
	}
	c.JSON(http.StatusOK, template)
}

// deleteTemplate godoc
// @Summary Deactivate an inspection template
// @Tags templates
// @Param templateID path string true "Template ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /inspection-templates/{templateID} [delete]
func (h *inspectionHandler) deleteTemplate(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	if err := h.templateService.DeleteTemplate(c.Request.Context(), p, c.Param("templateID")); err != nil {
		respondWithError(c, err, "Failed to delete template")
		return
	}
	c.Status(http.StatusNoContent)
}

// instantiate godoc
// @Summary Schedule an inspection
// @Description Creates an inspection bound to the template's current version.
// @Tags inspections
// @Accept json
// @Produce json
// @Param templateID path string true "Template ID"
// @Param inspection body dto.InstantiateRequest true "Site, assignee and date"
// @Success 201 {object} domain.Inspection
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /inspection-templates/{templateID}/instantiate [post]
func (h *inspectionHandler) instantiate(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.InstantiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	inspection, err := h.inspectionService.Instantiate(c.Request.Context(), p, c.Param("templateID"), req)
	if err != nil {
		respondWithError(c, err, "Failed to schedule inspection")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Inspection scheduled",
		slog.String("inspection_id", inspection.InspectionID),
		slog.Int("template_version", inspection.TemplateVersion))
	c.JSON(http.StatusCreated, inspection)
}

// listInspections godoc
// @Summary List inspections
// @Tags inspections
// @Produce json
// @Param siteID query string false "Filter by site"
// @Param status query string false "Filter by status"
// @Param assigneeID query string false "Filter by inspector"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} domain.Inspection
// @Security BearerAuth
// @Router /inspections [get]
func (h *inspectionHandler) listInspections(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListInspectionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	inspections, err := h.inspectionService.ListInspections(c.Request.Context(), p, params)
	if err != nil {
		respondWithError(c, err, "Failed to list inspections")
		return
	}
	c.JSON(http.StatusOK, inspections)
}

// getInspection godoc
// @Summary Get an inspection
// @Description Returns the inspection with its checklist, responses and findings.
// @Tags inspections
// @Produce json
// @Param inspectionID path string true "Inspection ID"
// @Success 200 {object} domain.InspectionDetail
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /inspections/{inspectionID} [get]
func (h *inspectionHandler) getInspection(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	detail, err := h.inspectionService.GetInspection(c.Request.Context(), p, c.Param("inspectionID"))
	if err != nil {
		respondWithError(c, err, "Failed to get inspection")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// recordResponse godoc
// @Summary Record a checklist response
// @Description Stores or replaces the answer to one checklist item. The first response starts the inspection.
// @Tags inspections
// @Accept json
// @Produce json
// @Param inspectionID path string true "Inspection ID"
// @Param response body dto.RecordResponseRequest true "Answer"
// @Success 200 {object} dto.RecordResponseResponse
// @Failure 400 {object} ErrorResponse "Item not in the inspection's checklist"
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Inspection is completed or canceled"
// @Security BearerAuth
// @Router /inspections/{inspectionID}/responses [post]
func (h *inspectionHandler) recordResponse(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.RecordResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	response, inspection, err := h.inspectionService.RecordResponse(c.Request.Context(), p, c.Param("inspectionID"), req)
	if err != nil {
		respondWithError(c, err, "Failed to record response")
		return
	}
	c.JSON(http.StatusOK, dto.RecordResponseResponse{Response: *response, Inspection: *inspection})
}

// completeInspection godoc
// @Summary Complete an inspection
// @Description Scores the inspection and raises a finding for each failed item. Completing again returns the stored result.
// @Tags inspections
// @Produce json
// @Param inspectionID path string true "Inspection ID"
// @Success 200 {object} dto.InspectionResultResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Invalid transition"
// @Failure 422 {object} ErrorResponse "Checklist incomplete"
// @Security BearerAuth
// @Router /inspections/{inspectionID}/complete [post]
func (h *inspectionHandler) completeInspection(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	result, err := h.inspectionService.Complete(c.Request.Context(), p, c.Param("inspectionID"))
	if err != nil {
		respondWithError(c, err, "Failed to complete inspection")
		return
	}
	c.JSON(http.StatusOK, dto.NewInspectionResultResponse(*result))
}

// cancelInspection godoc
// @Summary Cancel an inspection
// @Tags inspections
// @Produce json
// @Param inspectionID path string true "Inspection ID"
// @Success 200 {object} domain.Inspection
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Invalid transition"
// @Security BearerAuth
// @Router /inspections/{inspectionID}/cancel [post]
func (h *inspectionHandler) cancelInspection(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	inspection, err := h.inspectionService.Cancel(c.Request.Context(), p, c.Param("inspectionID"))
	if err != nil {
		respondWithError(c, err, "Failed to cancel inspection")
		return
	}
	c.JSON(http.StatusOK, inspection)
}

// listFindings godoc
// @Summary List inspection findings
// @Tags findings
// @Produce json
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} domain.InspectionFinding
// @Security BearerAuth
// @Router /findings [get]
func (h *inspectionHandler) listFindings(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListFindingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	findings, err := h.inspectionService.ListFindings(c.Request.Context(), p, params)
	if err != nil {
		respondWithError(c, err, "Failed to list findings")
		return
	}
	c.JSON(http.StatusOK, findings)
}

// updateFinding godoc
// @Summary Update a finding's remediation status
// @Tags findings
// @Accept json
// @Produce json
// @Param findingID path string true "Finding ID"
// @Param finding body dto.UpdateFindingRequest true "New status"
// @Success 200 {object} domain.InspectionFinding
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Invalid transition"
// @Security BearerAuth
// @Router /findings/{findingID} [put]
func (h *inspectionHandler) updateFinding(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateFindingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	finding, err := h.inspectionService.UpdateFinding(c.Request.Context(), p, c.Param("findingID"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update finding")
		return
	}
	c.JSON(http.StatusOK, finding)
}
