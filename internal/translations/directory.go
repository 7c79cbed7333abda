package translations

import (
	"context"
	"errors"

	"github.com/goliatone/go-media-sync/pkg/interfaces"
)

// ErrGroupKeyRequired reports an assignment without a group key.
var ErrGroupKeyRequired = errors.New("translations: group key required")

// ErrAssetIDRequired reports an assignment without an asset id.
var ErrAssetIDRequired = errors.New("translations: asset id required")

// Directory is a TranslationDirectory whose groups can be edited.
type Directory interface {
	interfaces.TranslationDirectory
	Assign(ctx context.Context, groupKey, locale, assetID string) error
	Forget(ctx context.Context, assetID string) error
}

// Availability reports whether translation management is active.
type Availability func(ctx context.Context) bool

// Always is the Availability used when none is configured.
func Always(context.Context) bool { return true }

// Option customises a directory.
type Option func(*options)

type options struct {
	available Availability
}

// WithAvailability installs the check behind IsAvailable.
func WithAvailability(fn Availability) Option {
	return func(o *options) {
		if fn != nil {
			o.available = fn
		}
	}
}

func resolveOptions(opts []Option) options {
	o := options{available: Always}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
