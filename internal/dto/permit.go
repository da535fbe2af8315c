package dto

import "time"

// CreatePermitRequest defines the data needed to request a work permit.
type CreatePermitRequest struct {
	SiteID      string    `json:"siteID" binding:"required"`
	PermitType  string    `json:"permitType" binding:"required,max=100"`
	Description string    `json:"description" binding:"max=4000"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
}

// DecidePermitRequest carries optional notes for an approve or deny decision.
type DecidePermitRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

// ListPermitsParams defines query parameters for listing permits.
type ListPermitsParams struct {
	SiteID string `form:"siteID"`
	Status string `form:"status"`
	ListParams
}
