package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/access"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/middleware"
	"github.com/SscSPs/site_safety_app/internal/platform/events"
	"github.com/SscSPs/site_safety_app/internal/platform/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Now     func() time.Time
	Metrics *metrics.Metrics
	Events  events.Publisher
}

// ServiceOption configures the BaseService embedded in every service.
type ServiceOption func(*BaseService)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Now = now
	}
}

// WithMetrics records guard denials and workflow transitions on m.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *BaseService) {
		s.Metrics = m
	}
}

// WithPublisher publishes domain events through p.
func WithPublisher(p events.Publisher) ServiceOption {
	return func(s *BaseService) {
		if p != nil {
			s.Events = p
		}
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{
		Now:    func() time.Time { return time.Now().UTC() },
		Events: events.NoopPublisher{},
	}
	for _, option := range options {
		option(&base)
	}
	return base
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// Authorize runs the access guard. Denials are logged at WARN with their reason code.
func (s *BaseService) Authorize(ctx context.Context, p domain.Principal, action access.Action, res access.Resource) error {
	decision := access.Authorize(p, action, res, s.Now())
	if decision.Allowed {
		return nil
	}
	s.Metrics.ObserveDenial(string(decision.Reason))
	s.LogWarn(ctx, "Access denied",
		slog.String("reason", string(decision.Reason)),
		slog.String("action", string(action)),
		slog.String("resource_kind", string(res.Kind)),
		slog.String("resource_id", res.ID),
		slog.String("resource_tenant_id", res.TenantID),
		slog.String("user_id", p.UserID))
	return decision.Err()
}

// repoError passes application errors through and turns anything else into an
// internal error after logging it.
func (s *BaseService) repoError(ctx context.Context, err error, msg string, keyvals ...any) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrDuplicate) {
		return err
	}
	s.LogError(ctx, err, msg, keyvals...)
	return apperrors.NewInternalError(msg, err)
}

// recordTransition counts a transition attempt by outcome.
func (s *BaseService) recordTransition(entity, from, to string, err error) {
	outcome := metrics.OutcomeApplied
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrConcurrentModification), errors.Is(err, apperrors.ErrAlreadyAssigned):
		outcome = metrics.OutcomeConflict
	default:
		outcome = metrics.OutcomeRejected
	}
	s.Metrics.ObserveTransition(entity, from, to, outcome)
}

// publish sends a domain event. Failures are logged and never fail the caller.
func (s *BaseService) publish(ctx context.Context, event events.Event) {
	err := s.Events.Publish(ctx, event)
	s.Metrics.ObserveEvent(event.EventType, err)
	if err != nil {
		s.LogWarn(ctx, "Failed to publish domain event",
			slog.String("error", err.Error()),
			slog.String("event_type", event.EventType),
			slog.String("entity_id", event.EntityID))
	}
}

// event builds an event stamped with the service clock.
func (s *BaseService) event(eventType string, p domain.Principal, tenantID, entityID string, payload map[string]any) events.Event {
	return events.NewEvent(eventType, tenantID, entityID, p.UserID, s.Now(), payload)
}

// notFoundAsValidation reports a missing referenced entity as invalid input.
func notFoundAsValidation(err error, msg string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewValidationFailedError(msg)
	}
	return err
}
