package translations

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/go-media-sync/internal/identity"
	"github.com/goliatone/go-media-sync/pkg/interfaces"
)

// MemoryDirectory keeps translation groups in process memory.
type MemoryDirectory struct {
	mu      sync.RWMutex
	groups  map[string][]interfaces.TranslationMember
	byAsset map[string]string
	opts    options
}

var _ Directory = (*MemoryDirectory)(nil)

// NewMemoryDirectory creates an empty directory.
func NewMemoryDirectory(opts ...Option) *MemoryDirectory {
	return &MemoryDirectory{
		groups:  make(map[string][]interfaces.TranslationMember),
		byAsset: make(map[string]string),
		opts:    resolveOptions(opts),
	}
}

// IsAvailable implements interfaces.TranslationDirectory.
func (d *MemoryDirectory) IsAvailable(ctx context.Context) bool {
	return d.opts.available(ctx)
}

// Assign appends assetID to the group named groupKey under locale. An asset
// already in another group is moved.
func (d *MemoryDirectory) Assign(_ context.Context, groupKey, locale, assetID string) error {
	groupKey = strings.TrimSpace(groupKey)
	assetID = strings.TrimSpace(assetID)
	if groupKey == "" {
		return ErrGroupKeyRequired
	}
	if assetID == "" {
		return ErrAssetIDRequired
	}
	groupID := identity.GroupUUID(groupKey).String()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.forgetLocked(assetID)
	d.groups[groupID] = append(d.groups[groupID], interfaces.TranslationMember{
		Locale:  strings.TrimSpace(locale),
		AssetID: assetID,
	})
	d.byAsset[assetID] = groupID
	return nil
}

// GroupOf returns a snapshot of the asset's group, or nil.
func (d *MemoryDirectory) GroupOf(_ context.Context, assetID string) (*interfaces.TranslationGroup, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	groupID, ok := d.byAsset[strings.TrimSpace(assetID)]
	if !ok {
		return nil, nil
	}
	members := d.groups[groupID]
	return &interfaces.TranslationGroup{
		GroupID: groupID,
		Members: append([]interfaces.TranslationMember(nil), members...),
	}, nil
}

// Forget removes assetID from its group.
func (d *MemoryDirectory) Forget(_ context.Context, assetID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.forgetLocked(strings.TrimSpace(assetID))
	return nil
}

func (d *MemoryDirectory) forgetLocked(assetID string) {
	groupID, ok := d.byAsset[assetID]
	if !ok {
		return
	}
	delete(d.byAsset, assetID)
	members := d.groups[groupID]
	kept := members[:0:0]
	for _, member := range members {
		if member.AssetID != assetID {
			kept = append(kept, member)
		}
	}
	if len(kept) == 0 {
		delete(d.groups, groupID)
		return
	}
	d.groups[groupID] = kept
}
