package media

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-media-sync/pkg/interfaces"
)

var (
	// ErrAssetNotFound indicates that the requested media asset could not be located.
	ErrAssetNotFound = errors.New("media: asset not found")
	// ErrAssetIDRequired reports an empty asset identifier.
	ErrAssetIDRequired = errors.New("media: asset id required")
)

// Asset is one deletable media item. An empty MimeType means the type is unknown.
type Asset struct {
	bun.BaseModel `bun:"table:media_assets,alias:ma"`

	ID        uuid.UUID  `bun:",pk,type:uuid"              json:"id"`
	Name      string     `bun:"name,notnull"               json:"name"`
	MimeType  string     `bun:"mime_type"                  json:"mime_type,omitempty"`
	Locale    string     `bun:"locale"                     json:"locale,omitempty"`
	DeletedAt *time.Time `bun:"deleted_at,nullzero"        json:"deleted_at,omitempty"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Trashed reports whether the asset was soft deleted.
func (a *Asset) Trashed() bool {
	return a != nil && a.DeletedAt != nil
}

// Store is an AssetStore that accepts new assets and announces deletions.
type Store interface {
	interfaces.AssetStore
	Create(ctx context.Context, asset *Asset) (*Asset, error)
	Get(ctx context.Context, id string) (*Asset, error)
	OnDelete(hook DeletionHook) func()
}
