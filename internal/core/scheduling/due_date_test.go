package scheduling

import (
	"testing"
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestComputeDueDate(t *testing.T) {
	t0 := time.Date(2025, 2, 27, 16, 30, 0, 0, time.UTC)

	tests := []struct {
		severity domain.HazardSeverity
		want     time.Duration
	}{
		{domain.HazardCritical, 24 * time.Hour},
		{domain.HazardHigh, 3 * 24 * time.Hour},
		{domain.HazardMedium, 7 * 24 * time.Hour},
		{domain.HazardLow, 14 * 24 * time.Hour},
		{domain.HazardSeverity("unknown"), 14 * 24 * time.Hour},
		{domain.HazardSeverity(""), 14 * 24 * time.Hour},
	}

	for _, tc := range tests {
		t.Run(string(tc.severity), func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeDueDate(tc.severity, t0).Sub(t0))
		})
	}
}

func TestComputeDueDateKeepsLocation(t *testing.T) {
	loc := time.FixedZone("site", 5*3600)
	t0 := time.Date(2025, 3, 30, 23, 0, 0, 0, loc)
	due := ComputeDueDate(domain.HazardCritical, t0)
	assert.Equal(t, loc, due.Location())
	assert.Equal(t, time.Date(2025, 3, 31, 23, 0, 0, 0, loc), due)
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 5, 5, 10, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name   string
		due    time.Time
		status domain.HazardStatus
		want   bool
	}{
		{"assigned past due", past, domain.HazardAssigned, true},
		{"in progress past due", past, domain.HazardInProgress, true},
		{"open past due", past, domain.HazardOpen, true},
		{"resolved past due", past, domain.HazardResolved, false},
		{"closed past due", past, domain.HazardClosed, false},
		{"assigned not yet due", future, domain.HazardAssigned, false},
		{"due exactly now", now, domain.HazardAssigned, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsOverdue(tc.due, tc.status, now))
		})
	}
}
