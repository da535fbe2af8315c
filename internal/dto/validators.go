package dto

import (
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the enum validators used in binding tags to v.
func RegisterValidators(v *validator.Validate) error {
	validators := map[string]validator.Func{
		"hazard_severity":   enumValidator(domain.HazardSeverities),
		"incident_severity": enumValidator(domain.IncidentSeverities),
		"global_role":       enumValidator(domain.GlobalRoles),
		"site_role":         enumValidator(domain.SiteRoles),
		"site_status":       enumValidator(domain.SiteStatuses),
		"score_scope":       enumValidator(domain.ScoreScopes),
	}
	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func enumValidator[E ~string](allowed []E) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, a := range allowed {
			if string(a) == value {
				return true
			}
		}
		return false
	}
}
