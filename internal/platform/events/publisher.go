// Package events publishes workflow domain events after a successful commit.
package events

import (
	"context"
	"time"
)

// Event types published by the services.
const (
	HazardCreated        = "hazard.created"
	HazardAssigned       = "hazard.assigned"
	HazardTransitioned   = "hazard.transitioned"
	IncidentReported     = "incident.reported"
	IncidentTransitioned = "incident.transitioned"
	PermitRequested      = "permit.requested"
	PermitDecided        = "permit.decided"
	PermitExpired        = "permit.expired"
	InspectionScheduled  = "inspection.scheduled"
	InspectionCompleted  = "inspection.completed"
	InspectionCanceled   = "inspection.canceled"
	FindingRaised        = "finding.raised"
	FindingStatusChanged = "finding.status_changed"
	TrainingAssigned     = "training.assigned"
)

// ServiceName is stamped on every event.
const ServiceName = "site-safety"

// Event is the JSON envelope written to the exchange.
type Event struct {
	EventType string         `json:"event_type"`
	Timestamp time.Time      `json:"timestamp"`
	Service   string         `json:"service"`
	TenantID  string         `json:"tenant_id"`
	EntityID  string         `json:"entity_id"`
	ActorID   string         `json:"actor_id"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// NewEvent builds an event stamped at now.
func NewEvent(eventType, tenantID, entityID, actorID string, now time.Time, payload map[string]any) Event {
	return Event{
		EventType: eventType,
		Timestamp: now,
		Service:   ServiceName,
		TenantID:  tenantID,
		EntityID:  entityID,
		ActorID:   actorID,
		Payload:   payload,
	}
}

// Publisher hands events to a broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

var _ Publisher = NoopPublisher{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
