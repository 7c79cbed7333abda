package translations

import (
	"context"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-media-sync/internal/identity"
	"github.com/goliatone/go-media-sync/pkg/interfaces"
)

// Link records that an asset is the Locale translation inside a group.
type Link struct {
	bun.BaseModel `bun:"table:media_translations,alias:mt"`

	ID        uuid.UUID `bun:",pk,type:uuid"            json:"id"`
	GroupID   uuid.UUID `bun:"group_id,notnull,type:uuid" json:"group_id"`
	AssetID   string    `bun:"asset_id,notnull"         json:"asset_id"`
	Locale    string    `bun:"locale"                   json:"locale"`
	Position  int       `bun:"position,notnull"         json:"position"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// NewLinkRepository builds the go-repository-bun repository for links.
func NewLinkRepository(db *bun.DB) repository.Repository[*Link] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Link]{
		NewRecord: func() *Link { return &Link{} },
		GetID: func(l *Link) uuid.UUID {
			return l.ID
		},
		SetID: func(l *Link, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "asset_id"
		},
		GetIdentifierValue: func(l *Link) string {
			if l == nil {
				return ""
			}
			return l.AssetID
		},
	})
}

// BunDirectory stores translation groups as ordered link rows.
type BunDirectory struct {
	repo repository.Repository[*Link]
	opts options
}

var _ Directory = (*BunDirectory)(nil)

// NewBunDirectory constructs a Bun-backed directory.
func NewBunDirectory(db *bun.DB, opts ...Option) *BunDirectory {
	return &BunDirectory{repo: NewLinkRepository(db), opts: resolveOptions(opts)}
}

// IsAvailable implements interfaces.TranslationDirectory.
func (d *BunDirectory) IsAvailable(ctx context.Context) bool {
	return d.opts.available(ctx)
}

// Assign appends assetID to the group named groupKey. An asset already linked
// to a group is moved.
func (d *BunDirectory) Assign(ctx context.Context, groupKey, locale, assetID string) error {
	groupKey = strings.TrimSpace(groupKey)
	assetID = strings.TrimSpace(assetID)
	if groupKey == "" {
		return ErrGroupKeyRequired
	}
	if assetID == "" {
		return ErrAssetIDRequired
	}
	if err := d.Forget(ctx, assetID); err != nil {
		return err
	}

	groupID := identity.GroupUUID(groupKey)
	members, err := d.members(ctx, groupID)
	if err != nil {
		return err
	}
	position := 0
	if n := len(members); n > 0 {
		position = members[n-1].Position + 1
	}
	_, err = d.repo.Create(ctx, &Link{
		ID:       identity.LinkUUID(groupID, assetID),
		GroupID:  groupID,
		AssetID:  assetID,
		Locale:   strings.TrimSpace(locale),
		Position: position,
	})
	return err
}

// GroupOf returns the ordered group containing assetID, or nil.
func (d *BunDirectory) GroupOf(ctx context.Context, assetID string) (*interfaces.TranslationGroup, error) {
	link, err := d.linkOf(ctx, strings.TrimSpace(assetID))
	if err != nil || link == nil {
		return nil, err
	}
	links, err := d.members(ctx, link.GroupID)
	if err != nil {
		return nil, err
	}
	group := &interfaces.TranslationGroup{
		GroupID: link.GroupID.String(),
		Members: make([]interfaces.TranslationMember, 0, len(links)),
	}
	for _, l := range links {
		group.Members = append(group.Members, interfaces.TranslationMember{Locale: l.Locale, AssetID: l.AssetID})
	}
	return group, nil
}

// Forget removes the asset's link, if any.
func (d *BunDirectory) Forget(ctx context.Context, assetID string) error {
	link, err := d.linkOf(ctx, strings.TrimSpace(assetID))
	if err != nil || link == nil {
		return err
	}
	return d.repo.Delete(ctx, link)
}

func (d *BunDirectory) linkOf(ctx context.Context, assetID string) (*Link, error) {
	if assetID == "" {
		return nil, nil
	}
	records, _, err := d.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.asset_id = ?", assetID)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func (d *BunDirectory) members(ctx context.Context, groupID uuid.UUID) ([]*Link, error) {
	records, _, err := d.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.group_id = ?", groupID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.position ASC")
		}),
	)
	return records, err
}
