package dto

import (
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TenantResponse defines the data returned for a tenant.
type TenantResponse struct {
	TenantID string `json:"tenantID"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	// ScoreWeights is the tenant override; nil when the configured defaults apply.
	ScoreWeights *domain.ScoreWeights `json:"scoreWeights,omitempty"`
}

// UpdateScoreWeightsRequest sets the tenant's safety score weights.
// Reset clears the override and returns the tenant to the configured defaults.
type UpdateScoreWeightsRequest struct {
	HazardTimeliness     decimal.Decimal `json:"hazardTimeliness"`
	TrainingCompletion   decimal.Decimal `json:"trainingCompletion"`
	InspectionCompliance decimal.Decimal `json:"inspectionCompliance"`
	IncidentInverse      decimal.Decimal `json:"incidentInverse"`
	Reset                bool            `json:"reset"`
}

// ToTenantResponse converts a domain.Tenant to TenantResponse DTO
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:     t.TenantID,
		Name:         t.Name,
		Slug:         t.Slug,
		ScoreWeights: t.ScoreWeights,
	}
}
