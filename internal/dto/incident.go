package dto

import (
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// CreateIncidentRequest defines the data needed to report an incident.
type CreateIncidentRequest struct {
	SiteID          string                  `json:"siteID" binding:"required"`
	Title           string                  `json:"title" binding:"required,max=200"`
	Description     string                  `json:"description" binding:"max=4000"`
	Severity        domain.IncidentSeverity `json:"severity" binding:"required,incident_severity"`
	OccurredAt      time.Time               `json:"occurredAt" binding:"required"`
	InvolvedUserIDs []string                `json:"involvedUserIDs"`
}

// TransitionIncidentRequest requests a status change. The investigation fields
// are required, and only read, when moving to resolved.
type TransitionIncidentRequest struct {
	Status               domain.IncidentStatus `json:"status" binding:"required"`
	RootCause            string                `json:"rootCause"`
	CorrectiveActions    string                `json:"correctiveActions"`
	PreventativeMeasures string                `json:"preventativeMeasures"`
}

// ListIncidentsParams defines query parameters for listing incidents.
type ListIncidentsParams struct {
	SiteID   string `form:"siteID"`
	Status   string `form:"status"`
	Severity string `form:"severity"`
	ListParams
}
