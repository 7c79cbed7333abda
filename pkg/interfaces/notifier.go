package interfaces

import "context"

// Notifier delivers a human readable summary of failed sibling deletions.
// Delivery is best-effort: callers log a returned error and move on.
type Notifier interface {
	Notify(ctx context.Context, triggerAssetID string, reasons []string) error
}
