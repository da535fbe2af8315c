package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScoreScope selects the population a safety score is computed for.
type ScoreScope string

const (
	ScopeUser          ScoreScope = "user"
	ScopeSite          ScoreScope = "site"
	ScopeSubcontractor ScoreScope = "subcontractor"
)

// ScoreScopes lists every valid score scope.
var ScoreScopes = []ScoreScope{ScopeUser, ScopeSite, ScopeSubcontractor}

// ScoreComponents holds the normalized [0,1] inputs of a score; nil means no data.
type ScoreComponents struct {
	HazardTimeliness     *decimal.Decimal `json:"hazardResponseTimeliness,omitempty"`
	TrainingCompletion   *decimal.Decimal `json:"trainingCompletionRate,omitempty"`
	InspectionCompliance *decimal.Decimal `json:"inspectionComplianceRate,omitempty"`
	IncidentInverse      *decimal.Decimal `json:"incidentRateInverse,omitempty"`
}

// SafetyScore is the computed score of one entity for a window. Never persisted.
type SafetyScore struct {
	Scope        ScoreScope      `json:"scope"`
	EntityID     string          `json:"entityID"`
	EntityName   string          `json:"entityName"`
	Score        decimal.Decimal `json:"score"`
	Components   ScoreComponents `json:"components"`
	DataPoints   int             `json:"dataPoints"`
	Rank         int             `json:"rank"`
	PreviousRank *int            `json:"previousRank,omitempty"`
	RankChange   int             `json:"rankChange"`
}

// ScoreWindow is the half-open interval [From, To).
type ScoreWindow struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Previous returns the immediately preceding window of equal length.
func (w ScoreWindow) Previous() ScoreWindow {
	length := w.To.Sub(w.From)
	return ScoreWindow{From: w.From.Add(-length), To: w.From}
}

// Contains reports whether t falls inside the window.
func (w ScoreWindow) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// SafetyScoreReport is the response of a score query.
type SafetyScoreReport struct {
	Scope   ScoreScope    `json:"scope"`
	Window  ScoreWindow   `json:"window"`
	Weights ScoreWeights  `json:"weights"`
	Scores  []SafetyScore `json:"scores"`
}

// ScoreFacts are the raw tenant facts the aggregator computes from.
type ScoreFacts struct {
	Users       []User
	Sites       []Site
	SiteRoles   []UserSiteRole
	Hazards     []HazardFact
	Trainings   []TrainingRecord
	Inspections []Inspection
	Incidents   []IncidentReport
}

// HazardFact joins an assignment with its hazard's site and resolution time.
type HazardFact struct {
	HazardID   string
	SiteID     string
	AssigneeID string
	DueDate    time.Time
	Status     HazardStatus
	ResolvedAt *time.Time
}
