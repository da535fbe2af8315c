package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidators(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterValidators(v))

	valid := CreateHazardRequest{SiteID: "s-1", Title: "Open trench", Severity: "critical"}
	assert.NoError(t, v.Struct(valid))

	invalid := valid
	invalid.Severity = "catastrophic"
	assert.Error(t, v.Struct(invalid))

	assert.NoError(t, v.Struct(ChangeRoleRequest{Role: "safety_officer"}))
	assert.Error(t, v.Struct(ChangeRoleRequest{Role: "owner"}))

	assert.NoError(t, v.Struct(GrantSiteRoleRequest{UserID: "u-1", Role: "site_manager"}))
	assert.Error(t, v.Struct(GrantSiteRoleRequest{UserID: "u-1", Role: "supervisor"}))
}
