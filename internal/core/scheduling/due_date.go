// Package scheduling computes hazard assignment due dates and overdue state.
package scheduling

import (
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

const day = 24 * time.Hour

// ResponseTime maps each hazard severity to the time allowed for a fix.
var ResponseTime = map[domain.HazardSeverity]time.Duration{
	domain.HazardCritical: 1 * day,
	domain.HazardHigh:     3 * day,
	domain.HazardMedium:   7 * day,
	domain.HazardLow:      14 * day,
}

// DefaultResponseTime applies to unknown severities.
const DefaultResponseTime = 14 * day

// ComputeDueDate returns the due date for an assignment made at assignedAt.
// The result is fixed at assignment time; later severity changes do not move it.
func ComputeDueDate(severity domain.HazardSeverity, assignedAt time.Time) time.Time {
	d, ok := ResponseTime[severity]
	if !ok {
		d = DefaultResponseTime
	}
	return assignedAt.Add(d)
}

// IsOverdue is a derived read: the due date has passed and the hazard is not
// yet resolved or closed.
func IsOverdue(dueDate time.Time, status domain.HazardStatus, now time.Time) bool {
	if status == domain.HazardResolved || status == domain.HazardClosed {
		return false
	}
	return dueDate.Before(now)
}
