// Package telemetry exports Prometheus metrics and an OpenTelemetry tracer for
// the media sync engine.
package telemetry

import (
	"context"
	"net/http"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-media-sync/internal/commands"
	"github.com/goliatone/go-media-sync/internal/mediasync"
)

const (
	namespace   = "mediasync"
	tracerScope = "github.com/goliatone/go-media-sync"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	Cascades      *prometheus.CounterVec
	Attempts      *prometheus.CounterVec
	Notifications prometheus.Counter
	Duration      *prometheus.HistogramVec
	Commands      *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

var _ mediasync.Metrics = (*Metrics)(nil)

// Provider bundles the tracer and metrics handed to the engine.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider registers the collectors on reg. A nil reg uses a private
// registry so repeated construction in one process does not collide.
func NewProvider(reg prometheus.Registerer) *Provider {
	return &Provider{
		Tracer:  otel.Tracer(tracerScope),
		Metrics: NewMetrics(reg),
	}
}

// NewMetrics registers the engine collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	var gatherer prometheus.Gatherer
	if reg == nil {
		private := prometheus.NewRegistry()
		reg, gatherer = private, private
	} else if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}
	factory := promauto.With(reg)

	return &Metrics{
		Cascades: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cascades_total",
			Help:      "Deletion events handled, by outcome and skip reason.",
		}, []string{"outcome", "reason"}),
		Attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attempts_total",
			Help:      "Sync attempts written to the log, by status.",
		}, []string{"status"}),
		Notifications: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Failure notifications sent.",
		}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cascade_duration_seconds",
			Help:      "Time spent handling one deletion event.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		Commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands executed, by command type and status.",
		}, []string{"command", "status"}),
		gatherer: gatherer,
	}
}

// ObserveResult records one engine invocation.
func (m *Metrics) ObserveResult(result mediasync.Result, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := outcomeOf(result)
	m.Cascades.WithLabelValues(outcome, string(result.Skip)).Inc()
	for _, attempt := range result.Attempts {
		m.Attempts.WithLabelValues(string(attempt.Outcome.Status)).Inc()
	}
	if result.Notified {
		m.Notifications.Inc()
	}
	m.Duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// ObserveCommand records one command execution.
func (m *Metrics) ObserveCommand(info commands.TelemetryInfo) {
	if m == nil {
		return
	}
	m.Commands.WithLabelValues(info.Command, string(info.Status)).Inc()
}

// CommandTelemetry counts every execution on m, then hands the outcome to next.
func CommandTelemetry[T command.Message](m *Metrics, next commands.Telemetry[T]) commands.Telemetry[T] {
	return func(ctx context.Context, msg T, info commands.TelemetryInfo) {
		m.ObserveCommand(info)
		if next != nil {
			next(ctx, msg, info)
		}
	}
}

// Handler serves the registry the metrics were registered on.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func outcomeOf(result mediasync.Result) string {
	switch {
	case result.Skipped():
		return "skipped"
	case len(result.Failures()) > 0:
		return "partial"
	default:
		return "completed"
	}
}
