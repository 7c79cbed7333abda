package interfaces

import "context"

// TranslationMember pairs a locale with the asset holding that translation.
type TranslationMember struct {
	Locale  string `json:"locale"`
	AssetID string `json:"asset_id"`
}

// TranslationGroup is the set of assets that are translations of one another.
// Members keep the order declared by the directory.
type TranslationGroup struct {
	GroupID string              `json:"group_id"`
	Members []TranslationMember `json:"members"`
}

// Siblings returns the members other than assetID, preserving order.
func (g *TranslationGroup) Siblings(assetID string) []TranslationMember {
	if g == nil {
		return nil
	}
	out := make([]TranslationMember, 0, len(g.Members))
	for _, member := range g.Members {
		if member.AssetID == assetID {
			continue
		}
		out = append(out, member)
	}
	return out
}

// TranslationDirectory answers which translation group an asset belongs to.
type TranslationDirectory interface {
	// IsAvailable reports whether translation management is active.
	IsAvailable(ctx context.Context) bool
	// GroupOf returns the asset's group, or nil when the asset is not
	// translation aware.
	GroupOf(ctx context.Context, assetID string) (*TranslationGroup, error)
}
