package dto

import "time"

// SafetyScoreParams defines the query of GET /safety-scores.
// Window accepts "30d" style day counts or Go durations; AsOf defaults to now.
type SafetyScoreParams struct {
	Scope  string     `form:"scope" binding:"required,score_scope"`
	Window string     `form:"window"`
	AsOf   *time.Time `form:"asOf" time_format:"2006-01-02T15:04:05Z07:00"`
}
