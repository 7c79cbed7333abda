package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const assetNamespace = "media_asset"

// NewAssetRepository builds the go-repository-bun repository for assets.
func NewAssetRepository(db *bun.DB) repository.Repository[*Asset] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Asset]{
		NewRecord: func() *Asset { return &Asset{} },
		GetID: func(a *Asset) uuid.UUID {
			return a.ID
		},
		SetID: func(a *Asset, id uuid.UUID) {
			a.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(a *Asset) string {
			if a == nil {
				return ""
			}
			return a.ID.String()
		},
	})
}

// BunStore persists assets through Bun with optional read caching. Asset ids
// are UUID strings; anything else is reported as not found.
type BunStore struct {
	repo         repository.Repository[*Asset]
	cacheService cache.CacheService
	cachePrefix  string
	hooks        *hookRegistry
	now          func() time.Time
}

var _ Store = (*BunStore)(nil)

// NewBunStore creates an asset store without caching.
func NewBunStore(db *bun.DB) *BunStore {
	return NewBunStoreWithCache(db, nil, nil)
}

// NewBunStoreWithCache creates an asset store whose reads go through the
// repository cache when both cache collaborators are supplied.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunStore {
	base := NewAssetRepository(db)
	store := &BunStore{hooks: newHookRegistry(), now: time.Now}
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		store.cacheService = cacheService
		store.cachePrefix = assetNamespace + cache.KeySeparator
	}
	store.repo = base
	return store
}

// Create inserts a new asset, assigning an id when missing.
func (s *BunStore) Create(ctx context.Context, asset *Asset) (*Asset, error) {
	if asset.ID == uuid.Nil {
		asset.ID = uuid.New()
	}
	return s.repo.Create(ctx, asset)
}

// Get loads an asset by id, including trashed ones.
func (s *BunStore) Get(ctx context.Context, id string) (*Asset, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrAssetNotFound
	}
	record, err := s.repo.GetByID(ctx, parsed.String())
	if err != nil {
		return nil, mapRepositoryError(err, id)
	}
	return record, nil
}

// OnDelete registers a deletion hook and returns its unregister function.
func (s *BunStore) OnDelete(hook DeletionHook) func() {
	return s.hooks.register(hook)
}

// MimeTypeOf returns the type of a live asset, or "" when it is missing or trashed.
func (s *BunStore) MimeTypeOf(ctx context.Context, id string) (string, error) {
	asset, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return "", nil
		}
		return "", err
	}
	if asset.Trashed() {
		return "", nil
	}
	return asset.MimeType, nil
}

// Delete fires the deletion hooks, then removes the row (permanent) or marks
// it deleted.
func (s *BunStore) Delete(ctx context.Context, id string, permanent bool) error {
	if strings.TrimSpace(id) == "" {
		return ErrAssetIDRequired
	}
	asset, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	s.hooks.fire(ctx, id)

	if permanent {
		err = s.repo.Delete(ctx, &Asset{ID: asset.ID})
	} else {
		now := s.now().UTC()
		asset.DeletedAt = &now
		_, err = s.repo.Update(ctx, asset)
	}
	if err != nil {
		return mapRepositoryError(err, id)
	}
	return s.invalidateCache(ctx)
}

func (s *BunStore) invalidateCache(ctx context.Context) error {
	if s.cacheService == nil || s.cachePrefix == "" {
		return nil
	}
	return s.cacheService.DeleteByPrefix(ctx, s.cachePrefix)
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return ErrAssetNotFound
	}
	return fmt.Errorf("media asset %s: %w", key, err)
}
