package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InspectionTemplate is a versioned checklist definition.
type InspectionTemplate struct {
	TemplateID  string          `json:"templateID"`
	TenantID    string          `json:"tenantID"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Version     int             `json:"version"`
	IsActive    bool            `json:"isActive"`
	Items       []ChecklistItem `json:"items,omitempty"` // Items of the current version
	AuditFields
}

// ChecklistItem belongs to one template version. Items are immutable; editing a
// template writes a new item set under the next version.
type ChecklistItem struct {
	ItemID            string `json:"itemID"`
	TenantID          string `json:"tenantID"`
	TemplateID        string `json:"templateID"`
	TemplateVersion   int    `json:"templateVersion"`
	Position          int    `json:"position"`
	Category          string `json:"category"`
	Question          string `json:"question"`
	IsCritical        bool   `json:"isCritical"`
	ExpectedAnswer    string `json:"expectedAnswer"`
	RecommendedAction string `json:"recommendedAction,omitempty"`
}

// InspectionStatus is the state of an inspection.
type InspectionStatus string

const (
	InspectionScheduled  InspectionStatus = "scheduled"
	InspectionInProgress InspectionStatus = "in_progress"
	InspectionCompleted  InspectionStatus = "completed"
	InspectionCanceled   InspectionStatus = "canceled"
)

// Inspection instantiates one template version at a site.
type Inspection struct {
	InspectionID    string           `json:"inspectionID"`
	TenantID        string           `json:"tenantID"`
	SiteID          string           `json:"siteID"`
	TemplateID      string           `json:"templateID"`
	TemplateVersion int              `json:"templateVersion"`
	AssigneeID      string           `json:"assigneeID"`
	ScheduledDate   time.Time        `json:"scheduledDate"`
	Location        string           `json:"location"`
	Status          InspectionStatus `json:"status"`
	Score           *decimal.Decimal `json:"score,omitempty"` // Set on completion
	StartedAt       *time.Time       `json:"startedAt,omitempty"`
	CompletedAt     *time.Time       `json:"completedAt,omitempty"`
	IsActive        bool             `json:"isActive"`
	AuditFields
	Versioned
}

// InspectionResponse is the answer to one checklist item.
type InspectionResponse struct {
	ResponseID   string    `json:"responseID"`
	TenantID     string    `json:"tenantID"` // Always the parent inspection's tenant
	InspectionID string    `json:"inspectionID"`
	ItemID       string    `json:"itemID"`
	Answer       string    `json:"answer"`
	Notes        string    `json:"notes"`
	RespondedBy  string    `json:"respondedBy"`
	RespondedAt  time.Time `json:"respondedAt"`
}

// FindingSeverity rates an inspection finding.
type FindingSeverity string

const (
	FindingLow      FindingSeverity = "low"
	FindingMedium   FindingSeverity = "medium"
	FindingHigh     FindingSeverity = "high"
	FindingCritical FindingSeverity = "critical"
)

// FindingStatus tracks remediation of a finding.
type FindingStatus string

const (
	FindingOpen       FindingStatus = "open"
	FindingInProgress FindingStatus = "in_progress"
	FindingResolved   FindingStatus = "resolved"
)

// InspectionFinding is raised for each non-compliant critical checklist item.
type InspectionFinding struct {
	FindingID         string          `json:"findingID"`
	TenantID          string          `json:"tenantID"`
	InspectionID      string          `json:"inspectionID"`
	ItemID            string          `json:"itemID"`
	Severity          FindingSeverity `json:"severity"`
	Location          string          `json:"location"`
	Description       string          `json:"description"`
	RecommendedAction string          `json:"recommendedAction"`
	Status            FindingStatus   `json:"status"`
	AuditFields
}

// InspectionResult is returned by completion.
type InspectionResult struct {
	Inspection Inspection          `json:"inspection"`
	Score      decimal.Decimal     `json:"score"`
	Findings   []InspectionFinding `json:"findings"`
}

// InspectionDetail is an inspection with its checklist version, responses and findings.
type InspectionDetail struct {
	Inspection Inspection           `json:"inspection"`
	Items      []ChecklistItem      `json:"items"`
	Responses  []InspectionResponse `json:"responses"`
	Findings   []InspectionFinding  `json:"findings"`
}

// FindingFilter narrows finding listings. Empty fields are ignored.
type FindingFilter struct {
	Status FindingStatus
}

// InspectionFilter narrows inspection listings. Empty fields are ignored.
type InspectionFilter struct {
	SiteID     string
	Status     InspectionStatus
	AssigneeID string
}
