package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// IncidentReader defines read operations for incident data
type IncidentReader interface {
	// FindIncidentByID retrieves a specific incident.
	FindIncidentByID(ctx context.Context, incidentID string) (*domain.IncidentReport, error)

	// ListIncidents retrieves a tenant's incidents newest first.
	ListIncidents(ctx context.Context, tenantID string, filter domain.IncidentFilter, page Page) ([]domain.IncidentReport, error)

	// ListIncidentsBetween retrieves incidents that occurred in [from, to).
	ListIncidentsBetween(ctx context.Context, tenantID string, from, to time.Time) ([]domain.IncidentReport, error)
}

// IncidentWriter defines write operations for incident data
type IncidentWriter interface {
	// SaveIncident persists a new incident.
	SaveIncident(ctx context.Context, incident domain.IncidentReport) error

	// TransitionIncident persists a status change by compare-and-swap.
	TransitionIncident(ctx context.Context, incident domain.IncidentReport, from domain.IncidentStatus, expectedVersion int64) error
}

// IncidentRepositoryFacade combines all incident-related repository interfaces
type IncidentRepositoryFacade interface {
	IncidentReader
	IncidentWriter
}
