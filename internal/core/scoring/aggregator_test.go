package scoring

import (
	"testing"
	"time"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	asOf   = time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	window = domain.ScoreWindow{From: asOf.Add(-30 * 24 * time.Hour), To: asOf}
	equal  = domain.ScoreWeights{
		HazardTimeliness:     decimal.NewFromInt(1),
		TrainingCompletion:   decimal.NewFromInt(1),
		InspectionCompliance: decimal.NewFromInt(1),
		IncidentInverse:      decimal.NewFromInt(1),
	}
)

func daysAgo(n int) time.Time { return asOf.Add(-time.Duration(n) * 24 * time.Hour) }

func ptr[T any](v T) *T { return &v }

func user(id, name string) domain.User {
	return domain.User{UserID: id, Name: name, Role: domain.RoleEmployee, IsActive: true}
}

func scoreOf(t *testing.T, scores []domain.SafetyScore, id string) domain.SafetyScore {
	t.Helper()
	for _, s := range scores {
		if s.EntityID == id {
			return s
		}
	}
	require.Failf(t, "score not found", "entity %s", id)
	return domain.SafetyScore{}
}

func TestComputeNoDataScores100(t *testing.T) {
	facts := domain.ScoreFacts{Users: []domain.User{user("u-1", "Ana")}}

	scores := Compute(domain.ScopeUser, facts, window, equal)

	require.Len(t, scores, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(scores[0].Score))
	assert.Equal(t, 0, scores[0].DataPoints)
	assert.Equal(t, 1, scores[0].Rank)
	assert.Nil(t, scores[0].Components.HazardTimeliness)
}

func TestHazardTimeliness(t *testing.T) {
	facts := domain.ScoreFacts{
		Users: []domain.User{user("u-1", "Ana")},
		Hazards: []domain.HazardFact{
			{HazardID: "h-1", AssigneeID: "u-1", DueDate: daysAgo(10), Status: domain.HazardResolved, ResolvedAt: ptr(daysAgo(11))},
			{HazardID: "h-2", AssigneeID: "u-1", DueDate: daysAgo(5), Status: domain.HazardAssigned},
			{HazardID: "h-3", AssigneeID: "u-1", DueDate: asOf.Add(48 * time.Hour), Status: domain.HazardAssigned},
			{HazardID: "h-4", AssigneeID: "u-1", DueDate: daysAgo(40), Status: domain.HazardAssigned},
		},
	}

	s := Compute(domain.ScopeUser, facts, window, equal)[0]

	require.NotNil(t, s.Components.HazardTimeliness)
	assert.Equal(t, "0.5", s.Components.HazardTimeliness.String())
	assert.Equal(t, 2, s.DataPoints)
	assert.True(t, decimal.NewFromInt(50).Equal(s.Score), "score %s", s.Score)
}

func TestMissingComponentsRenormalised(t *testing.T) {
	weights := domain.ScoreWeights{
		HazardTimeliness:     decimal.RequireFromString("0.4"),
		TrainingCompletion:   decimal.RequireFromString("0.3"),
		InspectionCompliance: decimal.RequireFromString("0.2"),
		IncidentInverse:      decimal.RequireFromString("0.1"),
	}
	facts := domain.ScoreFacts{
		Users: []domain.User{user("u-1", "Ana")},
		Hazards: []domain.HazardFact{
			{AssigneeID: "u-1", DueDate: daysAgo(3), Status: domain.HazardClosed, ResolvedAt: ptr(daysAgo(4))},
		},
		Incidents: []domain.IncidentReport{
			{IncidentID: "i-1", Severity: domain.IncidentMinor, OccurredAt: daysAgo(2), InvolvedUserIDs: []string{"u-1"}},
		},
	}

	s := Compute(domain.ScopeUser, facts, window, weights)[0]

	assert.Nil(t, s.Components.TrainingCompletion)
	assert.Nil(t, s.Components.InspectionCompliance)
	require.NotNil(t, s.Components.IncidentInverse)
	assert.Equal(t, "0.5", s.Components.IncidentInverse.String())
	assert.True(t, decimal.NewFromInt(90).Equal(s.Score), "score %s", s.Score)
}

func TestIncidentSeverityWeights(t *testing.T) {
	incidents := []domain.IncidentReport{
		{Severity: domain.IncidentModerate, OccurredAt: daysAgo(1)},
		{Severity: domain.IncidentMajor, OccurredAt: daysAgo(2)},
		{Severity: domain.IncidentCritical, OccurredAt: daysAgo(3)},
		{Severity: domain.IncidentCritical, OccurredAt: daysAgo(45)},
	}
	v, n := incidentInverse(incidents, window)
	require.NotNil(t, v)
	assert.Equal(t, 3, n)
	assert.True(t, decimal.NewFromInt(1).Div(decimal.NewFromInt(15)).Equal(*v))
}

func TestTrainingAndInspectionComponents(t *testing.T) {
	trainings := []domain.TrainingRecord{
		{UserID: "u-1", DueDate: daysAgo(5), Status: domain.TrainingCompleted, CompletedAt: ptr(daysAgo(6))},
		{UserID: "u-1", DueDate: daysAgo(4), Status: domain.TrainingAssigned},
		{UserID: "u-1", DueDate: daysAgo(3), Status: domain.TrainingAssigned},
		{UserID: "u-1", DueDate: daysAgo(2), Status: domain.TrainingCompleted, CompletedAt: ptr(daysAgo(2))},
	}
	tc, n := trainingCompletion(trainings, window)
	require.NotNil(t, tc)
	assert.Equal(t, 4, n)
	assert.Equal(t, "0.5", tc.String())

	inspections := []domain.Inspection{
		{Status: domain.InspectionCompleted, Score: ptr(decimal.NewFromInt(80)), CompletedAt: ptr(daysAgo(1))},
		{Status: domain.InspectionCompleted, Score: ptr(decimal.NewFromInt(100)), CompletedAt: ptr(daysAgo(2))},
		{Status: domain.InspectionInProgress},
		{Status: domain.InspectionCompleted, Score: ptr(decimal.NewFromInt(10)), CompletedAt: ptr(daysAgo(60))},
	}
	ic, n := inspectionCompliance(inspections, window)
	require.NotNil(t, ic)
	assert.Equal(t, 2, n)
	assert.Equal(t, "0.9", ic.String())
}

func TestDenseRankAndRankChange(t *testing.T) {
	prev := window.Previous()
	facts := domain.ScoreFacts{
		Users: []domain.User{user("u-1", "Ana"), user("u-2", "Ben"), user("u-3", "Cy")},
		Hazards: []domain.HazardFact{
			// Current window: Ana late, Ben and Cy on time.
			{AssigneeID: "u-1", DueDate: daysAgo(10), Status: domain.HazardAssigned},
			{AssigneeID: "u-2", DueDate: daysAgo(10), Status: domain.HazardResolved, ResolvedAt: ptr(daysAgo(12))},
			{AssigneeID: "u-3", DueDate: daysAgo(10), Status: domain.HazardResolved, ResolvedAt: ptr(daysAgo(12))},
			// Previous window: Ana on time, Ben late, Cy late.
			{AssigneeID: "u-1", DueDate: prev.From.Add(48 * time.Hour), Status: domain.HazardResolved, ResolvedAt: ptr(prev.From.Add(24 * time.Hour))},
			{AssigneeID: "u-2", DueDate: prev.From.Add(48 * time.Hour), Status: domain.HazardResolved, ResolvedAt: ptr(prev.From.Add(72 * time.Hour))},
			{AssigneeID: "u-3", DueDate: prev.From.Add(48 * time.Hour), Status: domain.HazardResolved, ResolvedAt: ptr(prev.From.Add(72 * time.Hour))},
		},
	}

	scores := Compute(domain.ScopeUser, facts, window, equal)

	ana, ben, cy := scoreOf(t, scores, "u-1"), scoreOf(t, scores, "u-2"), scoreOf(t, scores, "u-3")
	assert.Equal(t, 1, ben.Rank)
	assert.Equal(t, 1, cy.Rank)
	assert.Equal(t, 2, ana.Rank)

	require.NotNil(t, ana.PreviousRank)
	assert.Equal(t, 1, *ana.PreviousRank)
	assert.Equal(t, -1, ana.RankChange)
	require.NotNil(t, ben.PreviousRank)
	assert.Equal(t, 2, *ben.PreviousRank)
	assert.Equal(t, 1, ben.RankChange)

	assert.Equal(t, "u-2", scores[0].EntityID)
	assert.Equal(t, "u-3", scores[1].EntityID)
}

func TestSiteScope(t *testing.T) {
	facts := domain.ScoreFacts{
		Sites: []domain.Site{
			{SiteID: "s-1", Name: "North Tower", IsActive: true},
			{SiteID: "s-2", Name: "Depot", IsActive: true},
			{SiteID: "s-3", Name: "Closed Yard", IsActive: false},
		},
		Incidents: []domain.IncidentReport{
			{SiteID: "s-1", Severity: domain.IncidentCritical, OccurredAt: daysAgo(3)},
		},
	}

	scores := Compute(domain.ScopeSite, facts, window, equal)

	require.Len(t, scores, 2)
	assert.Equal(t, "s-2", scores[0].EntityID)
	assert.Equal(t, "s-1", scores[1].EntityID)
	assert.Equal(t, "11.11", scores[1].Score.StringFixed(2))
}

func TestSubcontractorPopulationWeighting(t *testing.T) {
	sub := func(id, company string) domain.User {
		return domain.User{UserID: id, Name: id, Role: domain.RoleSubcontractor, CompanyName: company, IsActive: true}
	}
	assignment := func(userID, siteID string) domain.UserSiteRole {
		return domain.UserSiteRole{UserID: userID, SiteID: siteID, Role: domain.SiteRoleSubcontractor, StartDate: daysAgo(90), IsActive: true}
	}
	facts := domain.ScoreFacts{
		Users: []domain.User{sub("u-1", "Acme Scaffolding"), sub("u-2", "acme scaffolding "), user("u-3", "Staff")},
		SiteRoles: []domain.UserSiteRole{
			assignment("u-1", "s-1"), assignment("u-1", "s-2"), assignment("u-1", "s-3"),
		},
		Hazards: []domain.HazardFact{
			{AssigneeID: "u-2", DueDate: daysAgo(3), Status: domain.HazardAssigned},
		},
	}

	scores := Compute(domain.ScopeSubcontractor, facts, window, equal)

	require.Len(t, scores, 1)
	s := scores[0]
	assert.Equal(t, "Acme Scaffolding", s.EntityName)
	// u-1 scores 100 with weight 3, u-2 scores 0 with weight 1.
	assert.True(t, decimal.NewFromInt(75).Equal(s.Score), "score %s", s.Score)
	assert.Equal(t, 1, s.DataPoints)
}

func TestCombineZeroWeights(t *testing.T) {
	half := decimal.RequireFromString("0.5")
	c := domain.ScoreComponents{HazardTimeliness: &half}
	assert.True(t, decimal.NewFromInt(100).Equal(Combine(c, domain.ScoreWeights{})))
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("", asOf)
	require.NoError(t, err)
	assert.Equal(t, asOf.Add(-DefaultWindow), w.From)
	assert.Equal(t, asOf, w.To)

	w, err = ParseWindow("7d", asOf)
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, w.To.Sub(w.From))

	w, err = ParseWindow("72h", asOf)
	require.NoError(t, err)
	assert.Equal(t, 72*time.Hour, w.To.Sub(w.From))

	for _, bad := range []string{"abc", "0d", "-3d", "xd", "400d", "367d", "281474976710657d", "9223372036854775807d"} {
		_, err := ParseWindow(bad, asOf)
		assert.ErrorIs(t, err, apperrors.ErrValidation, bad)
	}
}
