package models

import "github.com/shopspring/decimal"

// Tenant is the tenants row. The weight columns are either all set or all NULL.
type Tenant struct {
	TenantID                   string           `db:"tenant_id"`
	Name                       string           `db:"name"`
	Slug                       string           `db:"slug"`
	IsActive                   bool             `db:"is_active"`
	WeightHazardTimeliness     *decimal.Decimal `db:"weight_hazard_timeliness"`
	WeightTrainingCompletion   *decimal.Decimal `db:"weight_training_completion"`
	WeightInspectionCompliance *decimal.Decimal `db:"weight_inspection_compliance"`
	WeightIncidentInverse      *decimal.Decimal `db:"weight_incident_inverse"`
	AuditFields
}
