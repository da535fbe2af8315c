package models

import (
	"database/sql"
	"time"
)

// Site is the sites row.
type Site struct {
	SiteID   string         `db:"site_id"`
	TenantID string         `db:"tenant_id"`
	Name     string         `db:"name"`
	Address  sql.NullString `db:"address"`
	Status   string         `db:"status"`
	IsActive bool           `db:"is_active"`
	AuditFields
}

// UserSiteRole is the user_site_roles row.
type UserSiteRole struct {
	UserSiteRoleID string     `db:"user_site_role_id"`
	TenantID       string     `db:"tenant_id"`
	UserID         string     `db:"user_id"`
	SiteID         string     `db:"site_id"`
	Role           string     `db:"role"`
	StartDate      time.Time  `db:"start_date"`
	EndDate        *time.Time `db:"end_date"`
	IsActive       bool       `db:"is_active"`
	AuditFields
}
