// Package metrics holds the Prometheus collectors and the OpenTelemetry tracer
// shared by the HTTP middleware and the workflow services.
package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const namespace = "safety"

// Transition outcomes recorded on the workflow counter.
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
	OutcomeConflict = "conflict"
)

// Metrics groups every collector of the service. All methods are safe on a nil receiver.
type Metrics struct {
	RequestCount    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Transitions     *prometheus.CounterVec
	AccessDenials   *prometheus.CounterVec
	EventsPublished *prometheus.CounterVec
	ScoreCache      *prometheus.CounterVec

	Tracer trace.Tracer `json:"-"`
}

// NewMetrics creates the collectors and registers them with the default registry.
// Registering twice returns the collectors registered first.
func NewMetrics(serviceName string) *Metrics {
	return &Metrics{
		RequestCount: register(prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		)),
		RequestDuration: register(prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)),
		Transitions: register(prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "workflow",
				Name:      "transitions_total",
				Help:      "Workflow status transitions by entity and outcome",
			},
			[]string{"entity", "from", "to", "outcome"},
		)),
		AccessDenials: register(prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "access",
				Name:      "denials_total",
				Help:      "Access guard denials by reason",
			},
			[]string{"reason"},
		)),
		EventsPublished: register(prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "events",
				Name:      "published_total",
				Help:      "Domain events handed to the broker",
			},
			[]string{"event_type", "outcome"},
		)),
		ScoreCache: register(prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "score_cache",
				Name:      "lookups_total",
				Help:      "Safety score cache lookups by result",
			},
			[]string{"result"},
		)),
		Tracer: otel.Tracer(serviceName),
	}
}

func register[C prometheus.Collector](c C) C {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			panic(err)
		}
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}
	return c
}

// Handler returns the /metrics exposition handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveTransition counts one attempted status transition.
func (m *Metrics) ObserveTransition(entity, from, to, outcome string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(entity, from, to, outcome).Inc()
}

// ObserveDenial counts one access guard denial.
func (m *Metrics) ObserveDenial(reason string) {
	if m == nil {
		return
	}
	m.AccessDenials.WithLabelValues(reason).Inc()
}

// ObserveEvent counts one publish attempt.
func (m *Metrics) ObserveEvent(eventType string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.EventsPublished.WithLabelValues(eventType, outcome).Inc()
}

// ObserveCache counts a score cache lookup: hit, miss or error.
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.ScoreCache.WithLabelValues(result).Inc()
}

// InitTracing installs a sampling tracer provider as the global provider and
// returns its shutdown function.
func InitTracing(serviceName string) func(context.Context) error {
	tp := tracesdk.NewTracerProvider(
		tracesdk.WithSampler(tracesdk.AlwaysSample()),
		tracesdk.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
		)),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}
