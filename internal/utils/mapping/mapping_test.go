package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTenantWeightsRequireEveryColumn(t *testing.T) {
	weights := domain.ScoreWeights{
		HazardTimeliness:     decimal.NewFromFloat(0.4),
		TrainingCompletion:   decimal.NewFromFloat(0.1),
		InspectionCompliance: decimal.NewFromFloat(0.3),
		IncidentInverse:      decimal.NewFromFloat(0.2),
	}
	m := ToModelTenant(domain.Tenant{TenantID: "t1", ScoreWeights: &weights})
	d := ToDomainTenant(m)
	if assert.NotNil(t, d.ScoreWeights) {
		assert.True(t, d.ScoreWeights.Total().Equal(decimal.NewFromInt(1)))
	}

	m.WeightIncidentInverse = nil
	assert.Nil(t, ToDomainTenant(m).ScoreWeights)
}

func TestEmptyOptionalTextIsStoredAsNull(t *testing.T) {
	m := ToModelUser(domain.User{UserID: "u1", Role: domain.RoleEmployee})
	assert.False(t, m.CompanyName.Valid)

	m = ToModelUser(domain.User{UserID: "u2", Role: domain.RoleSubcontractor, CompanyName: "Acme Scaffolding"})
	assert.True(t, m.CompanyName.Valid)
	assert.Equal(t, "Acme Scaffolding", ToDomainUser(m).CompanyName)
}

func TestIncidentInvolvedUsersNeverNil(t *testing.T) {
	m := ToModelIncident(domain.IncidentReport{IncidentID: "i1", OccurredAt: time.Now()})
	assert.NotNil(t, m.InvolvedUserIDs)

	m.InvolvedUserIDs = nil
	assert.Equal(t, []string{}, ToDomainIncident(m).InvolvedUserIDs)
}
