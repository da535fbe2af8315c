package dto

import (
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// CreateSiteRequest defines the data needed to create a site.
type CreateSiteRequest struct {
	Name    string            `json:"name" binding:"required,max=200"`
	Address string            `json:"address" binding:"max=500"`
	Status  domain.SiteStatus `json:"status" binding:"omitempty,site_status"`
}

// UpdateSiteRequest defines the data allowed for updating a site.
type UpdateSiteRequest struct {
	Name    *string            `json:"name" binding:"omitempty,max=200"`
	Address *string            `json:"address" binding:"omitempty,max=500"`
	Status  *domain.SiteStatus `json:"status" binding:"omitempty,site_status"`
}

// GrantSiteRoleRequest assigns a site role to a user. StartDate defaults to now.
type GrantSiteRoleRequest struct {
	UserID    string          `json:"userID" binding:"required"`
	Role      domain.SiteRole `json:"role" binding:"required,site_role"`
	StartDate *time.Time      `json:"startDate"`
	EndDate   *time.Time      `json:"endDate"`
}
