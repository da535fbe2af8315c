package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// InspectionTemplate is the inspection_templates row.
type InspectionTemplate struct {
	TemplateID  string `db:"template_id"`
	TenantID    string `db:"tenant_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Category    string `db:"category"`
	Version     int    `db:"version"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}

// ChecklistItem is the checklist_items row.
type ChecklistItem struct {
	ItemID            string         `db:"item_id"`
	TenantID          string         `db:"tenant_id"`
	TemplateID        string         `db:"template_id"`
	TemplateVersion   int            `db:"template_version"`
	Position          int            `db:"position"`
	Category          string         `db:"category"`
	Question          string         `db:"question"`
	IsCritical        bool           `db:"is_critical"`
	ExpectedAnswer    string         `db:"expected_answer"`
	RecommendedAction sql.NullString `db:"recommended_action"`
}

// Inspection is the inspections row.
type Inspection struct {
	InspectionID    string           `db:"inspection_id"`
	TenantID        string           `db:"tenant_id"`
	SiteID          string           `db:"site_id"`
	TemplateID      string           `db:"template_id"`
	TemplateVersion int              `db:"template_version"`
	AssigneeID      string           `db:"assignee_id"`
	ScheduledDate   time.Time        `db:"scheduled_date"`
	Location        string           `db:"location"`
	Status          string           `db:"status"`
	Score           *decimal.Decimal `db:"score"`
	StartedAt       *time.Time       `db:"started_at"`
	CompletedAt     *time.Time       `db:"completed_at"`
	IsActive        bool             `db:"is_active"`
	Version         int64            `db:"version"`
	AuditFields
}

// InspectionResponse is the inspection_responses row.
type InspectionResponse struct {
	ResponseID   string         `db:"response_id"`
	TenantID     string         `db:"tenant_id"`
	InspectionID string         `db:"inspection_id"`
	ItemID       string         `db:"item_id"`
	Answer       string         `db:"answer"`
	Notes        sql.NullString `db:"notes"`
	RespondedBy  string         `db:"responded_by"`
	RespondedAt  time.Time      `db:"responded_at"`
}

// InspectionFinding is the inspection_findings row.
type InspectionFinding struct {
	FindingID         string `db:"finding_id"`
	TenantID          string `db:"tenant_id"`
	InspectionID      string `db:"inspection_id"`
	ItemID            string `db:"item_id"`
	Severity          string `db:"severity"`
	Location          string `db:"location"`
	Description       string `db:"description"`
	RecommendedAction string `db:"recommended_action"`
	Status            string `db:"status"`
	AuditFields
}
