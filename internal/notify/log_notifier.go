package notify

import (
	"context"

	"github.com/goliatone/go-media-sync/internal/logging"
	"github.com/goliatone/go-media-sync/pkg/interfaces"
)

// LogNotifier writes the failure summary to a structured logger. It is the
// fallback when no outbound channel is configured.
type LogNotifier struct {
	cfg config
}

var _ interfaces.Notifier = (*LogNotifier)(nil)

// NewLogNotifier constructs a logger-backed notifier.
func NewLogNotifier(opts ...Option) *LogNotifier {
	cfg := config{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &LogNotifier{cfg: cfg}
}

// Notify implements interfaces.Notifier.
func (n *LogNotifier) Notify(ctx context.Context, triggerAssetID string, reasons []string) error {
	msg := Compose(n.cfg.siteName, triggerAssetID, reasons, n.cfg.recipients)
	logging.WithCascadeContext(n.cfg.logger, "", triggerAssetID, "").
		WithContext(ctx).
		Warn("mediasync.notification",
			"subject", msg.Subject,
			"body", msg.Body,
			"recipients", msg.Recipients,
			"failures", len(reasons),
		)
	return nil
}
