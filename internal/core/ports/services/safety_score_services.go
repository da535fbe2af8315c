package services

import (
	"context"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/dto"
)

// SafetyScoreSvc computes ranked safety scores for a scope and window.
type SafetyScoreSvc interface {
	GetSafetyScores(ctx context.Context, p domain.Principal, params dto.SafetyScoreParams) (*domain.SafetyScoreReport, error)
}
