package domain

import "time"

// IncidentSeverity classifies the consequence of an incident.
type IncidentSeverity string

const (
	IncidentMinor    IncidentSeverity = "minor"
	IncidentModerate IncidentSeverity = "moderate"
	IncidentMajor    IncidentSeverity = "major"
	IncidentCritical IncidentSeverity = "critical"
)

// IncidentSeverities lists every valid incident severity.
var IncidentSeverities = []IncidentSeverity{IncidentMinor, IncidentModerate, IncidentMajor, IncidentCritical}

// IncidentStatus is the investigation state of an incident.
type IncidentStatus string

const (
	IncidentReported      IncidentStatus = "reported"
	IncidentInvestigating IncidentStatus = "investigating"
	IncidentResolved      IncidentStatus = "resolved"
	IncidentClosed        IncidentStatus = "closed"
)

// IncidentReport records an incident at a site.
type IncidentReport struct {
	IncidentID      string           `json:"incidentID"`
	TenantID        string           `json:"tenantID"`
	SiteID          string           `json:"siteID"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Severity        IncidentSeverity `json:"severity"`
	Status          IncidentStatus   `json:"status"`
	OccurredAt      time.Time        `json:"occurredAt"`
	ReportedBy      string           `json:"reportedBy"`
	InvolvedUserIDs []string         `json:"involvedUserIDs"`
	// Investigation outcome; only populated by the resolve transition.
	RootCause              string     `json:"rootCause,omitempty"`
	CorrectiveActions      string     `json:"correctiveActions,omitempty"`
	PreventativeMeasures   string     `json:"preventativeMeasures,omitempty"`
	InvestigationStartedAt *time.Time `json:"investigationStartedAt,omitempty"`
	ResolvedAt             *time.Time `json:"resolvedAt,omitempty"`
	ClosedAt               *time.Time `json:"closedAt,omitempty"`
	IsActive               bool       `json:"isActive"`
	AuditFields
	Versioned
}

// IncidentResolution carries the data required to resolve an incident.
type IncidentResolution struct {
	RootCause            string
	CorrectiveActions    string
	PreventativeMeasures string
}

// IncidentFilter narrows incident listings. Empty fields are ignored.
type IncidentFilter struct {
	SiteID   string
	Status   IncidentStatus
	Severity IncidentSeverity
}
