package domain

import "github.com/shopspring/decimal"

// Tenant is an isolated organization; the unit of data partitioning.
type Tenant struct {
	TenantID     string        `json:"tenantID"`
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	IsActive     bool          `json:"isActive"`
	ScoreWeights *ScoreWeights `json:"scoreWeights,omitempty"` // Overrides the configured defaults when set
	AuditFields
}

// ScoreWeights are the relative weights of the safety score components.
type ScoreWeights struct {
	HazardTimeliness     decimal.Decimal `json:"hazardTimeliness"`
	TrainingCompletion   decimal.Decimal `json:"trainingCompletion"`
	InspectionCompliance decimal.Decimal `json:"inspectionCompliance"`
	IncidentInverse      decimal.Decimal `json:"incidentInverse"`
}

// Total returns the sum of all weights.
func (w ScoreWeights) Total() decimal.Decimal {
	return w.HazardTimeliness.Add(w.TrainingCompletion).Add(w.InspectionCompliance).Add(w.IncidentInverse)
}
