package services

import (
	"context"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/dto"
)

// IncidentSvcFacade defines operations on incident reports
type IncidentSvcFacade interface {
	CreateIncident(ctx context.Context, p domain.Principal, req dto.CreateIncidentRequest) (*domain.IncidentReport, error)
	GetIncident(ctx context.Context, p domain.Principal, incidentID string) (*domain.IncidentReport, error)
	ListIncidents(ctx context.Context, p domain.Principal, params dto.ListIncidentsParams) ([]domain.IncidentReport, error)

	// TransitionIncident moves an incident along its investigation lifecycle.
	TransitionIncident(ctx context.Context, p domain.Principal, incidentID string, req dto.TransitionIncidentRequest) (*domain.IncidentReport, error)
}
