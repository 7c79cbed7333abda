package interfaces

import "context"

// AssetStore owns deletable media assets. The sync engine never mutates an
// asset directly, it only asks the store to remove one.
type AssetStore interface {
	// MimeTypeOf returns the asset content type. An empty string means the
	// type is absent or could not be resolved.
	MimeTypeOf(ctx context.Context, assetID string) (string, error)
	// Delete removes the asset. permanent=true bypasses any trash or soft
	// delete the store may offer. A non-nil error is the failure reason.
	Delete(ctx context.Context, assetID string, permanent bool) error
}
