package mediasync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-media-sync/internal/logging"
	"github.com/goliatone/go-media-sync/internal/synclog"
	"github.com/goliatone/go-media-sync/pkg/interfaces"
)

// Engine deletes every translation of an asset once that asset is deleted.
// Construct one per process and hand its Hook to the asset store.
type Engine struct {
	directory interfaces.TranslationDirectory
	assets    interfaces.AssetStore
	log       synclog.Store
	notifier  interfaces.Notifier
	logger    interfaces.Logger
	now       func() time.Time
	newID     func() uuid.UUID
	guard     *guard
	tracer    trace.Tracer
	metrics   Metrics
}

// Metrics receives the summary of every invocation.
type Metrics interface {
	ObserveResult(result Result, elapsed time.Duration)
}

const tracerName = "github.com/goliatone/go-media-sync/internal/mediasync"

// Option customises the engine.
type Option func(*Engine)

// WithLogStore sets the store receiving sync attempts.
func WithLogStore(store synclog.Store) Option {
	return func(e *Engine) {
		if store != nil {
			e.log = store
		}
	}
}

// WithNotifier sets the notifier told about failed cascades.
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(e *Engine) {
		e.notifier = notifier
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the attempt timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.now = clock
		}
	}
}

// WithIDGenerator overrides the attempt id source.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// WithTracer overrides the OpenTelemetry tracer. The global provider is used
// by default.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// WithMetrics installs a metrics sink.
func WithMetrics(metrics Metrics) Option {
	return func(e *Engine) {
		e.metrics = metrics
	}
}

// NewEngine wires the engine to its collaborators. Without WithLogStore the
// attempts are kept in an in-memory log of synclog.DefaultCapacity entries.
func NewEngine(directory interfaces.TranslationDirectory, assets interfaces.AssetStore, opts ...Option) *Engine {
	e := &Engine{
		directory: directory,
		assets:    assets,
		logger:    logging.NoOp(),
		now:       time.Now,
		newID:     uuid.New,
		guard:     newGuard(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log, _ = synclog.NewMemoryStore(synclog.DefaultCapacity)
	}
	return e
}

// Logs returns the store the engine writes to.
func (e *Engine) Logs() synclog.Store {
	return e.log
}

// Hook adapts OnAssetDeleted to a plain deletion callback.
func (e *Engine) Hook() func(ctx context.Context, assetID string) {
	return func(ctx context.Context, assetID string) {
		e.OnAssetDeleted(ctx, assetID)
	}
}

// OnAssetDeleted reacts to the deletion of assetID by deleting every other
// member of its translation group. It always returns normally: failures are
// written to the log and, when siblings fail, reported once to the notifier.
func (e *Engine) OnAssetDeleted(ctx context.Context, assetID string) Result {
	return e.run(ctx, "mediasync.OnAssetDeleted", assetID, true)
}

// Replay runs the cascade for an asset whose deletion event was missed or
// whose previous cascade left siblings behind. The trigger is expected to be
// gone from the asset store already, so its media type is not checked; the
// group is resolved from the directory alone.
func (e *Engine) Replay(ctx context.Context, assetID string) Result {
	return e.run(ctx, "mediasync.Replay", assetID, false)
}

func (e *Engine) run(ctx context.Context, spanName, assetID string, validate bool) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	assetID = strings.TrimSpace(assetID)
	started := e.now()
	ctx = logging.ContextWithFields(ctx, map[string]any{"trigger_asset_id": assetID})
	ctx, span := e.tracer.Start(ctx, spanName,
		trace.WithAttributes(attribute.String("mediasync.trigger_asset_id", assetID)))

	result := e.cascade(ctx, assetID, validate)

	span.SetAttributes(
		attribute.String("mediasync.group_id", result.GroupID),
		attribute.String("mediasync.skip", string(result.Skip)),
		attribute.Int("mediasync.attempts", len(result.Attempts)),
		attribute.Int("mediasync.failures", len(result.Failures())),
	)
	if len(result.Failures()) > 0 {
		span.SetStatus(codes.Error, "sibling deletion failed")
	}
	span.End()
	if e.metrics != nil {
		e.metrics.ObserveResult(result, e.now().Sub(started))
	}
	return result
}

func (e *Engine) cascade(ctx context.Context, assetID string, validate bool) Result {
	result := Result{TriggerAssetID: assetID, Phase: PhaseIdle}
	logger := logging.WithCascadeContext(e.logger, "", assetID, "").WithContext(ctx)

	if e.directory == nil || e.assets == nil || !e.directory.IsAvailable(ctx) {
		return e.skip(logger, result, SkipUnavailable)
	}
	if e.guard.holds(assetID) {
		return e.skip(logger, result, SkipReentrant)
	}

	if validate {
		result.Phase = PhaseValidating
		mimeType, err := e.assets.MimeTypeOf(ctx, assetID)
		if err != nil || strings.TrimSpace(mimeType) == "" {
			if err != nil {
				logger.Debug("mediasync.mime_type.lookup_failed", "error", err)
			}
			result.Attempts = append(result.Attempts,
				e.record(ctx, logger, assetID, assetID, synclog.Failure(synclog.ReasonInvalidMediaType)))
			return e.skip(logger, result, SkipInvalidMediaType)
		}
	}

	group, err := e.directory.GroupOf(ctx, assetID)
	if err != nil {
		logger.Warn("mediasync.group.lookup_failed", "error", err)
		return e.skip(logger, result, SkipNoGroup)
	}
	if group == nil {
		return e.skip(logger, result, SkipNoGroup)
	}
	result.GroupID = group.GroupID
	result.Phase = PhaseResolved
	logger = logging.WithCascadeContext(e.logger, "", assetID, group.GroupID).WithContext(ctx)

	siblings := group.Siblings(assetID)
	result.Phase = PhaseCascading
	logger.Debug("mediasync.cascade.start", "siblings", len(siblings))

	var reasons []string
	for _, member := range siblings {
		outcome := e.deleteSibling(ctx, member.AssetID)
		if outcome.Failed() {
			reasons = append(reasons, outcome.Reason)
			logging.WithCascadeContext(logger, member.AssetID, "", "").
				Warn("mediasync.sibling.failed", "locale", member.Locale, "reason", outcome.Reason)
		}
		result.Attempts = append(result.Attempts, e.record(ctx, logger, member.AssetID, assetID, outcome))
	}

	result.Phase = PhaseAggregating
	if len(reasons) > 0 && e.notifier != nil {
		result.Phase = PhaseNotifying
		if err := e.notifier.Notify(ctx, assetID, reasons); err != nil {
			logger.Error("mediasync.notify.failed", "error", err, "failures", len(reasons))
		}
		result.Notified = true
	}

	result.Phase = PhaseIdle
	logger.Info("mediasync.cascade.completed", "siblings", len(siblings), "failures", len(reasons))
	return result
}

// deleteSibling deletes one sibling while holding the guard for it, so the
// store's deletion event for that sibling is ignored.
func (e *Engine) deleteSibling(ctx context.Context, assetID string) (outcome synclog.Outcome) {
	release := e.guard.acquire(assetID)
	defer release()
	defer func() {
		if r := recover(); r != nil {
			outcome = synclog.Failure(fmt.Sprint(r))
		}
	}()

	if err := e.assets.Delete(ctx, assetID, true); err != nil {
		return synclog.Failure(err.Error())
	}
	return synclog.Success()
}

func (e *Engine) record(ctx context.Context, logger interfaces.Logger, subject, trigger string, outcome synclog.Outcome) synclog.Attempt {
	attempt := synclog.Attempt{
		ID:             e.newID(),
		Timestamp:      e.now().UTC(),
		SubjectAssetID: subject,
		TriggerAssetID: trigger,
		Outcome:        outcome,
	}
	if err := e.log.Append(ctx, attempt); err != nil {
		logger.Error("mediasync.log.append_failed", "error", err, "subject_asset_id", subject)
	}
	return attempt
}

func (e *Engine) skip(logger interfaces.Logger, result Result, reason SkipReason) Result {
	result.Phase = PhaseSkipped
	result.Skip = reason
	logger.Debug("mediasync.cascade.skipped", "reason", string(reason))
	return result
}
