package media

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory asset store for tests and demos. Asset ids are
// opaque strings.
type MemoryStore struct {
	mu     sync.RWMutex
	assets map[string]*Asset
	hooks  *hookRegistry
	now    func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		assets: make(map[string]*Asset),
		hooks:  newHookRegistry(),
		now:    time.Now,
	}
}

// Put inserts or replaces the asset stored under id.
func (s *MemoryStore) Put(id string, asset Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := asset
	s.assets[strings.TrimSpace(id)] = &copied
}

// Create stores asset under its id string, assigning an id when missing.
func (s *MemoryStore) Create(_ context.Context, asset *Asset) (*Asset, error) {
	if asset == nil {
		return nil, ErrAssetIDRequired
	}
	if asset.ID == uuid.Nil {
		asset.ID = uuid.New()
	}
	if asset.CreatedAt.IsZero() {
		asset.CreatedAt = s.now()
	}
	s.Put(asset.ID.String(), *asset)
	copied := *asset
	return &copied, nil
}

// Get returns a copy of the asset, including trashed ones.
func (s *MemoryStore) Get(_ context.Context, id string) (*Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	asset, ok := s.assets[strings.TrimSpace(id)]
	if !ok {
		return nil, ErrAssetNotFound
	}
	copied := *asset
	return &copied, nil
}

// OnDelete registers a deletion hook and returns its unregister function.
func (s *MemoryStore) OnDelete(hook DeletionHook) func() {
	return s.hooks.register(hook)
}

// MimeTypeOf returns the content type of a live asset. Unknown and trashed
// assets resolve to an empty type.
func (s *MemoryStore) MimeTypeOf(_ context.Context, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	asset, ok := s.assets[strings.TrimSpace(id)]
	if !ok || asset.Trashed() {
		return "", nil
	}
	return asset.MimeType, nil
}

// Delete fires the deletion hooks, then purges the asset (permanent) or moves
// it to the trash.
func (s *MemoryStore) Delete(ctx context.Context, id string, permanent bool) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrAssetIDRequired
	}
	s.mu.RLock()
	_, ok := s.assets[id]
	s.mu.RUnlock()
	if !ok {
		return ErrAssetNotFound
	}

	s.hooks.fire(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[id]
	if !ok {
		return ErrAssetNotFound
	}
	if permanent {
		delete(s.assets, id)
		return nil
	}
	now := s.now().UTC()
	asset.DeletedAt = &now
	return nil
}

// Len returns the number of stored assets, trashed ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assets)
}
