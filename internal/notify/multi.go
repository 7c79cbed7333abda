package notify

import (
	"context"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-media-sync/pkg/interfaces"
)

// Multi delivers to every notifier in order and joins their errors. A failing
// notifier does not prevent delivery to the next one.
type Multi []interfaces.Notifier

var _ interfaces.Notifier = Multi(nil)

// Notify implements interfaces.Notifier.
func (m Multi) Notify(ctx context.Context, triggerAssetID string, reasons []string) error {
	var errs []error
	for _, notifier := range m {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, triggerAssetID, reasons); err != nil {
			errs = append(errs, err)
		}
	}
	return goerrors.Join(errs...)
}
