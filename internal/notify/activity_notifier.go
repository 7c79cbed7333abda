package notify

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-media-sync/pkg/activity"
	"github.com/goliatone/go-media-sync/pkg/interfaces"
)

const (
	// ActivityVerb is recorded for every failed cascade.
	ActivityVerb = "media.sync.delete_failed"
	// ActivityObjectType is the object type of the triggering asset.
	ActivityObjectType = "media"
	// ActivityDefinitionCode identifies the notification template.
	ActivityDefinitionCode = "mediasync:delete_failed"

	defaultChannel = "mediasync"
)

// ErrHookRequired reports an activity notifier without a hook.
var ErrHookRequired = errors.New("notify: activity hook is required")

// ActivityNotifier records failed cascades as activity events.
type ActivityNotifier struct {
	hook activity.Hook
	cfg  config
}

var _ interfaces.Notifier = (*ActivityNotifier)(nil)

// NewActivityNotifier constructs a notifier that emits through hook.
func NewActivityNotifier(hook activity.Hook, opts ...Option) (*ActivityNotifier, error) {
	if hook == nil {
		return nil, ErrHookRequired
	}
	cfg := config{channel: defaultChannel, now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &ActivityNotifier{hook: hook, cfg: cfg}, nil
}

// Notify implements interfaces.Notifier.
func (n *ActivityNotifier) Notify(ctx context.Context, triggerAssetID string, reasons []string) error {
	msg := Compose(n.cfg.siteName, triggerAssetID, reasons, n.cfg.recipients)
	return n.hook.Notify(ctx, activity.Event{
		Verb:           ActivityVerb,
		ObjectType:     ActivityObjectType,
		ObjectID:       triggerAssetID,
		Channel:        n.cfg.channel,
		DefinitionCode: ActivityDefinitionCode,
		Recipients:     msg.Recipients,
		Metadata: map[string]any{
			"subject": msg.Subject,
			"body":    msg.Body,
			"errors":  append([]string(nil), reasons...),
		},
		OccurredAt: n.cfg.now().UTC(),
	})
}
