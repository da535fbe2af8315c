package dto

import (
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// CreateHazardRequest defines the data needed to report a hazard.
type CreateHazardRequest struct {
	SiteID      string                `json:"siteID" binding:"required"`
	Title       string                `json:"title" binding:"required,max=200"`
	Description string                `json:"description" binding:"max=4000"`
	Location    string                `json:"location" binding:"max=500"`
	Severity    domain.HazardSeverity `json:"severity" binding:"required,hazard_severity"`
}

// UpdateHazardRequest defines the descriptive fields that may change after reporting.
// A severity change does not move the due date of an existing assignment.
type UpdateHazardRequest struct {
	Title       *string                `json:"title" binding:"omitempty,max=200"`
	Description *string                `json:"description" binding:"omitempty,max=4000"`
	Location    *string                `json:"location" binding:"omitempty,max=500"`
	Severity    *domain.HazardSeverity `json:"severity" binding:"omitempty,hazard_severity"`
}

// AssignHazardRequest assigns an open hazard. Start moves it straight to in_progress.
type AssignHazardRequest struct {
	AssigneeID string `json:"assigneeID" binding:"required"`
	Start      bool   `json:"start"`
}

// TransitionHazardRequest requests a status change. AssigneeID is only used for
// open -> in_progress, which assigns and starts in one step.
type TransitionHazardRequest struct {
	Status     domain.HazardStatus `json:"status" binding:"required"`
	AssigneeID string              `json:"assigneeID"`
}

// AddCommentRequest adds a comment to a hazard.
type AddCommentRequest struct {
	Body string `json:"body" binding:"required,max=4000"`
}

// ListHazardsParams defines query parameters for listing hazards.
type ListHazardsParams struct {
	SiteID     string `form:"siteID"`
	Status     string `form:"status"`
	Severity   string `form:"severity"`
	AssigneeID string `form:"assigneeID"`
	Limit      int    `form:"limit,default=20"`
	NextToken  string `form:"nextToken"`
}

// AssignmentResponse is the active assignment of a hazard.
type AssignmentResponse struct {
	AssignmentID string    `json:"assignmentID"`
	AssigneeID   string    `json:"assigneeID"`
	AssignerID   string    `json:"assignerID"`
	AssignedAt   time.Time `json:"assignedAt"`
	DueDate      time.Time `json:"dueDate"`
}

// HazardResponse defines the data returned for a hazard.
type HazardResponse struct {
	HazardID    string                `json:"hazardID"`
	SiteID      string                `json:"siteID"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Location    string                `json:"location"`
	Severity    domain.HazardSeverity `json:"severity"`
	Status      domain.HazardStatus   `json:"status"`
	ReportedBy  string                `json:"reportedBy"`
	Assignment  *AssignmentResponse   `json:"assignment,omitempty"`
	IsOverdue   bool                  `json:"isOverdue"`
	ResolvedAt  *time.Time            `json:"resolvedAt,omitempty"`
	ClosedAt    *time.Time            `json:"closedAt,omitempty"`
	Version     int64                 `json:"version"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"lastUpdatedAt"`
}

// ListHazardsResponse wraps a page of hazards.
type ListHazardsResponse struct {
	Hazards   []HazardResponse `json:"hazards"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// ToHazardResponse converts a hazard and its assignment; isOverdue is evaluated at now.
func ToHazardResponse(h domain.HazardWithAssignment, isOverdue bool) HazardResponse {
	resp := HazardResponse{
		HazardID:    h.Hazard.HazardID,
		SiteID:      h.Hazard.SiteID,
		Title:       h.Hazard.Title,
		Description: h.Hazard.Description,
		Location:    h.Hazard.Location,
		Severity:    h.Hazard.Severity,
		Status:      h.Hazard.Status,
		ReportedBy:  h.Hazard.ReportedBy,
		IsOverdue:   isOverdue,
		ResolvedAt:  h.Hazard.ResolvedAt,
		ClosedAt:    h.Hazard.ClosedAt,
		Version:     h.Hazard.Version,
		CreatedAt:   h.Hazard.CreatedAt,
		UpdatedAt:   h.Hazard.LastUpdatedAt,
	}
	if a := h.Assignment; a != nil {
		resp.Assignment = &AssignmentResponse{
			AssignmentID: a.AssignmentID,
			AssigneeID:   a.AssigneeID,
			AssignerID:   a.AssignerID,
			AssignedAt:   a.AssignedAt,
			DueDate:      a.DueDate,
		}
	}
	return resp
}
