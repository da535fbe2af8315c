package dto

import (
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// ChecklistItemRequest defines one checklist item of a template.
type ChecklistItemRequest struct {
	Category          string `json:"category" binding:"max=100"`
	Question          string `json:"question" binding:"required,max=1000"`
	IsCritical        bool   `json:"isCritical"`
	ExpectedAnswer    string `json:"expectedAnswer" binding:"required,max=200"`
	RecommendedAction string `json:"recommendedAction" binding:"max=1000"`
}

// CreateTemplateRequest defines a template and its first checklist version.
type CreateTemplateRequest struct {
	Name        string                 `json:"name" binding:"required,max=200"`
	Description string                 `json:"description" binding:"max=2000"`
	Category    string                 `json:"category" binding:"max=100"`
	Items       []ChecklistItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateTemplateRequest publishes a new checklist version. Inspections already
// instantiated keep the version they were created from.
type UpdateTemplateRequest struct {
	Name        *string                `json:"name" binding:"omitempty,max=200"`
	Description *string                `json:"description" binding:"omitempty,max=2000"`
	Category    *string                `json:"category" binding:"omitempty,max=100"`
	Items       []ChecklistItemRequest `json:"items" binding:"required,min=1,dive"`
}

// InstantiateRequest schedules an inspection from a template.
type InstantiateRequest struct {
	SiteID        string    `json:"siteID" binding:"required"`
	AssigneeID    string    `json:"assigneeID" binding:"required"`
	ScheduledDate time.Time `json:"scheduledDate" binding:"required"`
	Location      string    `json:"location" binding:"max=500"`
}

// RecordResponseRequest answers one checklist item. Answering again overwrites.
type RecordResponseRequest struct {
	ItemID string `json:"itemID" binding:"required"`
	Answer string `json:"answer" binding:"required,max=200"`
	Notes  string `json:"notes" binding:"max=2000"`
}

// RecordResponseResponse returns the stored response and the inspection after it.
type RecordResponseResponse struct {
	Response   domain.InspectionResponse `json:"response"`
	Inspection domain.Inspection         `json:"inspection"`
}

// InspectionResultResponse is the completion outcome with the score as a JSON number.
type InspectionResultResponse struct {
	Inspection domain.Inspection          `json:"inspection"`
	Score      float64                    `json:"score" example:"66.67"`
	Findings   []domain.InspectionFinding `json:"findings"`
}

// NewInspectionResultResponse converts a completion result, rounding the score to two places.
func NewInspectionResultResponse(r domain.InspectionResult) InspectionResultResponse {
	return InspectionResultResponse{
		Inspection: r.Inspection,
		Score:      r.Score.Round(2).InexactFloat64(),
		Findings:   r.Findings,
	}
}

// UpdateFindingRequest advances a finding's remediation status.
type UpdateFindingRequest struct {
	Status domain.FindingStatus `json:"status" binding:"required"`
}

// ListInspectionsParams defines query parameters for listing inspections.
type ListInspectionsParams struct {
	SiteID     string `form:"siteID"`
	Status     string `form:"status"`
	AssigneeID string `form:"assigneeID"`
	ListParams
}

// ListFindingsParams defines query parameters for listing findings.
type ListFindingsParams struct {
	Status string `form:"status"`
	ListParams
}
