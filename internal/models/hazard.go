package models

import "time"

// Hazard is the hazards row.
type Hazard struct {
	HazardID    string     `db:"hazard_id"`
	TenantID    string     `db:"tenant_id"`
	SiteID      string     `db:"site_id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Location    string     `db:"location"`
	Severity    string     `db:"severity"`
	Status      string     `db:"status"`
	ReportedBy  string     `db:"reported_by"`
	ResolvedAt  *time.Time `db:"resolved_at"`
	ClosedAt    *time.Time `db:"closed_at"`
	IsActive    bool       `db:"is_active"`
	Version     int64      `db:"version"`
	AuditFields
}

// HazardAssignment is the hazard_assignments row.
type HazardAssignment struct {
	AssignmentID string    `db:"assignment_id"`
	TenantID     string    `db:"tenant_id"`
	HazardID     string    `db:"hazard_id"`
	AssigneeID   string    `db:"assignee_id"`
	AssignerID   string    `db:"assigner_id"`
	AssignedAt   time.Time `db:"assigned_at"`
	DueDate      time.Time `db:"due_date"`
	Status       string    `db:"status"`
	IsActive     bool      `db:"is_active"`
	AuditFields
}

// HazardComment is the hazard_comments row.
type HazardComment struct {
	CommentID string    `db:"comment_id"`
	TenantID  string    `db:"tenant_id"`
	HazardID  string    `db:"hazard_id"`
	AuthorID  string    `db:"author_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}
