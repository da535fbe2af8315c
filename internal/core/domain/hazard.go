package domain

import "time"

// HazardSeverity drives the due date of an assignment.
type HazardSeverity string

const (
	HazardLow      HazardSeverity = "low"
	HazardMedium   HazardSeverity = "medium"
	HazardHigh     HazardSeverity = "high"
	HazardCritical HazardSeverity = "critical"
)

// HazardSeverities lists every valid hazard severity.
var HazardSeverities = []HazardSeverity{HazardLow, HazardMedium, HazardHigh, HazardCritical}

// HazardStatus is the state of a hazard report.
type HazardStatus string

const (
	HazardOpen       HazardStatus = "open"
	HazardAssigned   HazardStatus = "assigned"
	HazardInProgress HazardStatus = "in_progress"
	HazardResolved   HazardStatus = "resolved"
	HazardClosed     HazardStatus = "closed"
)

// HazardReport is a reported site hazard.
type HazardReport struct {
	HazardID    string         `json:"hazardID"`
	TenantID    string         `json:"tenantID"`
	SiteID      string         `json:"siteID"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Severity    HazardSeverity `json:"severity"`
	Status      HazardStatus   `json:"status"`
	ReportedBy  string         `json:"reportedBy"`
	ResolvedAt  *time.Time     `json:"resolvedAt,omitempty"`
	ClosedAt    *time.Time     `json:"closedAt,omitempty"`
	IsActive    bool           `json:"isActive"`
	AuditFields
	Versioned
}

// HazardAssignment links a hazard to the person responsible for fixing it.
type HazardAssignment struct {
	AssignmentID string       `json:"assignmentID"`
	TenantID     string       `json:"tenantID"` // Always the parent hazard's tenant
	HazardID     string       `json:"hazardID"`
	AssigneeID   string       `json:"assigneeID"`
	AssignerID   string       `json:"assignerID"`
	AssignedAt   time.Time    `json:"assignedAt"`
	DueDate      time.Time    `json:"dueDate"`
	Status       HazardStatus `json:"status"` // Mirrors the hazard's status
	IsActive     bool         `json:"isActive"`
	AuditFields
}

// HazardComment is a free-text note on a hazard.
type HazardComment struct {
	CommentID string    `json:"commentID"`
	TenantID  string    `json:"tenantID"`
	HazardID  string    `json:"hazardID"`
	AuthorID  string    `json:"authorID"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// HazardFilter narrows hazard listings. Empty fields are ignored.
type HazardFilter struct {
	SiteID     string
	Status     HazardStatus
	Severity   HazardSeverity
	AssigneeID string
}

// HazardWithAssignment is a hazard joined with its active assignment, if any.
type HazardWithAssignment struct {
	Hazard     HazardReport
	Assignment *HazardAssignment
}
