package models

import (
	"database/sql"
	"time"
)

// Incident is the incidents row.
type Incident struct {
	IncidentID             string         `db:"incident_id"`
	TenantID               string         `db:"tenant_id"`
	SiteID                 string         `db:"site_id"`
	Title                  string         `db:"title"`
	Description            string         `db:"description"`
	Severity               string         `db:"severity"`
	Status                 string         `db:"status"`
	OccurredAt             time.Time      `db:"occurred_at"`
	ReportedBy             string         `db:"reported_by"`
	InvolvedUserIDs        []string       `db:"involved_user_ids"`
	RootCause              sql.NullString `db:"root_cause"`
	CorrectiveActions      sql.NullString `db:"corrective_actions"`
	PreventativeMeasures   sql.NullString `db:"preventative_measures"`
	InvestigationStartedAt *time.Time     `db:"investigation_started_at"`
	ResolvedAt             *time.Time     `db:"resolved_at"`
	ClosedAt               *time.Time     `db:"closed_at"`
	IsActive               bool           `db:"is_active"`
	Version                int64          `db:"version"`
	AuditFields
}
