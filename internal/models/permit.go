package models

import (
	"database/sql"
	"time"
)

// Permit is the permits row.
type Permit struct {
	PermitID      string         `db:"permit_id"`
	TenantID      string         `db:"tenant_id"`
	SiteID        string         `db:"site_id"`
	PermitType    string         `db:"permit_type"`
	Description   string         `db:"description"`
	Status        string         `db:"status"`
	StartDate     time.Time      `db:"start_date"`
	EndDate       time.Time      `db:"end_date"`
	RequestedBy   string         `db:"requested_by"`
	DecidedBy     *string        `db:"decided_by"`
	DecidedAt     *time.Time     `db:"decided_at"`
	DecisionNotes sql.NullString `db:"decision_notes"`
	ExpiredAt     *time.Time     `db:"expired_at"`
	IsActive      bool           `db:"is_active"`
	Version       int64          `db:"version"`
	AuditFields
}
