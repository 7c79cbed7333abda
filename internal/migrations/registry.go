package migrations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-media-sync/internal/media"
	"github.com/goliatone/go-media-sync/internal/synclog"
	"github.com/goliatone/go-media-sync/internal/translations"
)

// ErrModelRequired reports a registration without a model.
var ErrModelRequired = errors.New("migrations: model is required")

// Index describes a secondary index created after its table.
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

type table struct {
	model   any
	indexes []Index
}

// Registry collects the Bun models owned by the module and creates their
// tables in registration order.
type Registry struct {
	mu     sync.RWMutex
	tables []table
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Default returns a registry holding every table used by the Bun stores.
func Default() *Registry {
	r := NewRegistry()
	_ = r.Register((*synclog.AttemptRecord)(nil),
		Index{Name: "idx_media_sync_logs_key_seq", Columns: []string{"log_key", "seq"}, Unique: true})
	_ = r.Register((*media.Asset)(nil))
	_ = r.Register((*translations.Link)(nil),
		Index{Name: "idx_media_translations_asset", Columns: []string{"asset_id"}, Unique: true},
		Index{Name: "idx_media_translations_group", Columns: []string{"group_id", "position"}})
	return r
}

// Register adds a model and its indexes.
func (r *Registry) Register(model any, indexes ...Index) error {
	if r == nil || model == nil {
		return ErrModelRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables = append(r.tables, table{model: model, indexes: append([]Index(nil), indexes...)})
	return nil
}

// Len returns the number of registered tables.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tables)
}

// Apply creates every registered table and index that does not exist yet.
func (r *Registry) Apply(ctx context.Context, db bun.IDB) error {
	if r == nil || db == nil {
		return nil
	}
	r.mu.RLock()
	tables := append([]table(nil), r.tables...)
	r.mu.RUnlock()

	for _, t := range tables {
		if _, err := db.NewCreateTable().Model(t.model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("migrations: create table for %T: %w", t.model, err)
		}
		for _, idx := range t.indexes {
			query := db.NewCreateIndex().
				Model(t.model).
				Index(idx.Name).
				Column(idx.Columns...).
				IfNotExists()
			if idx.Unique {
				query = query.Unique()
			}
			if _, err := query.Exec(ctx); err != nil {
				return fmt.Errorf("migrations: create index %s: %w", strings.TrimSpace(idx.Name), err)
			}
		}
	}
	return nil
}

// Ensure applies the default registry to db.
func Ensure(ctx context.Context, db bun.IDB) error {
	return Default().Apply(ctx, db)
}
